package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/pricer"
)

// Price returns a handler for GET /api/v1/price.
//
// Responds with the aggregate catalog total in VP, cache-first. Passing
// ?stats=1 re-runs the source chain and attaches per-fetch statistics;
// statistics bypass the cache because individual prices are never persisted.
func Price(f *pricer.Fetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, cacheHit, err := f.TotalPrice(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		resp := models.PriceResponse{
			Success:  true,
			TotalVP:  total,
			CacheHit: cacheHit,
		}

		if flagSet(c.Query("stats")) {
			stats, err := f.Statistics(c.Request.Context())
			if err != nil {
				respondError(c, err)
				return
			}
			resp.Statistics = stats
		}

		c.JSON(http.StatusOK, resp)
	}
}
