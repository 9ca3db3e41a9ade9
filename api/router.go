package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skindex/api/handler"
	"github.com/use-agent/skindex/api/middleware"
	"github.com/use-agent/skindex/config"
	"github.com/use-agent/skindex/currency"
	"github.com/use-agent/skindex/fx"
	"github.com/use-agent/skindex/pricer"
	"github.com/use-agent/skindex/source"
	"github.com/use-agent/skindex/verify"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     RateLimit
//
// Health endpoint is intentionally outside the rate limit so monitoring
// probes always work.
func NewRouter(
	f *pricer.Fetcher,
	conv *currency.Converter,
	provider *fx.Provider,
	mgr *source.Manager,
	v *verify.Verifier,
	cfg *config.Config,
	startTime time.Time,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health is never rate limited.
	v1.GET("/health", handler.Health(f, startTime))

	limited := v1.Group("")
	limited.Use(middleware.RateLimit(cfg.RateLimit))

	// Prices
	limited.GET("/price", handler.Price(f))
	limited.GET("/convert", handler.Convert(f, conv))
	limited.GET("/currencies", handler.Currencies())

	// Verification
	limited.GET("/report", handler.Report(mgr, v))

	// Cache control
	limited.POST("/refresh", handler.Refresh(f, provider))

	return r
}
