// Package fx resolves foreign-exchange rates through an ordered fallback
// chain: live API, secondary API slot, static table. Results are cached on
// disk with a 24h TTL.
package fx

import (
	"context"
	"log/slog"

	"github.com/use-agent/skindex/cache"
	"github.com/use-agent/skindex/config"
	"github.com/use-agent/skindex/models"
)

// RateSource is one strategy for obtaining a rate table.
type RateSource interface {
	// Name returns the source identifier (e.g. "open-er-api").
	Name() string

	// Fetch returns currency-code → rate relative to the base currency.
	Fetch(ctx context.Context) (map[string]float64, error)
}

// Provider runs the rate-source chain behind the TTL cache. Same
// first-success-wins discipline as the price sources.
type Provider struct {
	sources []RateSource
	store   *cache.Store[map[string]float64]
	base    string
}

// NewProvider builds the default chain for the given config.
func NewProvider(cfg config.FXConfig, store *cache.Store[map[string]float64]) *Provider {
	return &Provider{
		sources: []RateSource{
			newLiveSource(cfg),
			newSecondarySource(),
			newStaticSource(cfg.BaseCode),
		},
		store: store,
		base:  cfg.BaseCode,
	}
}

// NewProviderWithSources builds a Provider over an explicit chain.
func NewProviderWithSources(base string, store *cache.Store[map[string]float64], sources ...RateSource) *Provider {
	return &Provider{sources: sources, store: store, base: base}
}

// Rates returns the rate table, cache-first. The base currency code always
// maps to 1.0 in the returned table.
func (p *Provider) Rates(ctx context.Context) (map[string]float64, error) {
	if rates, ok := p.store.Read(); ok {
		slog.Debug("using cached exchange rates", "count", len(rates))
		return rates, nil
	}

	var lastErr error
	for _, src := range p.sources {
		slog.Info("trying exchange-rate source", "source", src.Name())
		rates, err := src.Fetch(ctx)
		if err != nil {
			lastErr = err
			slog.Warn("exchange-rate source failed", "source", src.Name(), "error", err)
			continue
		}
		if len(rates) == 0 {
			slog.Warn("exchange-rate source returned no rates", "source", src.Name())
			continue
		}

		rates[p.base] = 1.0
		p.store.Write(rates)
		slog.Info("exchange rates fetched", "source", src.Name(), "count", len(rates))
		return rates, nil
	}

	return nil, models.NewFetchError(
		models.ErrCodeExhausted,
		"all exchange-rate sources failed",
		lastErr,
	)
}

// Refresh invalidates the cached table so the next Rates call re-runs the
// chain.
func (p *Provider) Refresh() {
	p.store.Invalidate()
}
