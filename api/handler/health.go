package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/pricer"
)

// Health returns a handler for GET /api/v1/health.
func Health(f *pricer.Fetcher, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := models.HealthResponse{
			Status:        "healthy",
			UptimeSeconds: time.Since(startTime).Round(time.Second).Seconds(),
		}
		if age, ok := f.CacheAge(); ok {
			resp.CacheAge = age.Round(time.Second).String()
		}

		c.JSON(http.StatusOK, resp)
	}
}
