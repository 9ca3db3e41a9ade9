package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/use-agent/skindex/api"
	"github.com/use-agent/skindex/cache"
	"github.com/use-agent/skindex/config"
	"github.com/use-agent/skindex/currency"
	"github.com/use-agent/skindex/fx"
	"github.com/use-agent/skindex/pricer"
	"github.com/use-agent/skindex/source"
	"github.com/use-agent/skindex/verify"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("skindex starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"catalogURL", cfg.Fetch.CatalogURL,
	)

	// ── 3. Build the price source chain ─────────────────────────────
	// Browser first: some A/B buckets render the tables client-side. If the
	// browser cannot launch (no Chromium on the host) the plain-HTTP source
	// carries the whole load.
	var sources []source.Source

	browserSrc, err := source.NewBrowserSource(cfg.Browser, cfg.Fetch)
	if err != nil {
		slog.Warn("browser source unavailable, continuing with HTTP only", "error", err)
	} else {
		defer browserSrc.Close()
		sources = append(sources, source.WithRetry(browserSrc, cfg.Fetch.MaxAttempts))
	}
	sources = append(sources, source.WithRetry(source.NewHTTPSource(cfg.Fetch), cfg.Fetch.MaxAttempts))

	limiter := rate.NewLimiter(rate.Limit(cfg.Fetch.RequestsPerSecond), cfg.Fetch.Burst)
	mgr := source.NewManager(limiter, sources...)

	// ── 4. Caches, rates, conversion ────────────────────────────────
	catalogStore := cache.NewStore[int](cfg.Cache.CatalogCachePath(), "price", cfg.Cache.CatalogTTL)
	fxStore := cache.NewStore[map[string]float64](cfg.Cache.FXCachePath(), "rates", cfg.Cache.FXTTL)

	provider := fx.NewProvider(cfg.FX, fxStore)
	converter := currency.NewConverter(provider, cfg.FX.BaseCode)
	fetcher := pricer.NewFetcher(mgr, catalogStore)
	verifier := verify.New()

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(fetcher, converter, provider, mgr, verifier, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// browserSrc.Close() runs via defer and kills Chrome.
	slog.Info("skindex stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
