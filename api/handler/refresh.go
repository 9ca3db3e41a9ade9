package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skindex/fx"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/pricer"
)

// Refresh returns a handler for POST /api/v1/refresh.
//
// Invalidates the catalog cache, plus the FX cache when ?fx=1, so the next
// price or conversion request fetches fresh data. The fetch itself happens
// lazily, not here.
func Refresh(f *pricer.Fetcher, provider *fx.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.RefreshCache()

		clearFX := flagSet(c.Query("fx"))
		if clearFX {
			provider.Refresh()
		}

		c.JSON(http.StatusOK, models.RefreshResponse{
			Success:      true,
			CatalogCache: true,
			FXCache:      clearFX,
		})
	}
}
