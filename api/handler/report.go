package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/source"
	"github.com/use-agent/skindex/verify"
)

// Report returns a handler for GET /api/v1/report.
//
// Fetches fresh catalog markup (the per-row metadata never hits the cache),
// scores extraction quality and returns both the structured analysis and the
// rendered plain-text report.
func Report(mgr *source.Manager, v *verify.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		markup, err := mgr.GetMarkup(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		analysis := v.Analyze(c.Request.Context(), markup)
		c.JSON(http.StatusOK, models.ReportResponse{
			Success:  analysis.Err == "",
			Analysis: analysis,
			Report:   verify.Render(analysis),
		})
	}
}
