package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skindex/currency"
	"github.com/use-agent/skindex/models"
)

// Currencies returns a handler for GET /api/v1/currencies.
func Currencies() gin.HandlerFunc {
	return func(c *gin.Context) {
		keys := currency.Keys()
		infos := make([]models.CurrencyInfo, 0, len(keys))
		for _, key := range keys {
			profile := currency.Catalog[key]
			infos = append(infos, models.CurrencyInfo{
				Key:       key,
				Code:      profile.Code,
				BasePrice: profile.BasePrice,
			})
		}

		c.JSON(http.StatusOK, models.CurrenciesResponse{
			Success:    true,
			Currencies: infos,
		})
	}
}
