package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skindex/currency"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/pricer"
)

const defaultCurrencyKey = "United States Dollar ($)"

// Convert returns a handler for GET /api/v1/convert.
//
// The ?currency query parameter selects a display currency by its catalog
// key; it defaults to US dollars. The formatted string may itself carry an
// "error:" tag when the rate lookup degrades mid-conversion.
func Convert(f *pricer.Fetcher, conv *currency.Converter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.DefaultQuery("currency", defaultCurrencyKey)
		if _, ok := currency.Catalog[key]; !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "unknown currency key: " + key,
				},
			})
			return
		}

		total, _, err := f.TotalPrice(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ConvertResponse{
			Success:   true,
			Currency:  key,
			TotalVP:   total,
			Formatted: conv.Convert(c.Request.Context(), total, key),
		})
	}
}
