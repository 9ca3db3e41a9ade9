package source

import (
	"context"
	"log/slog"

	"github.com/use-agent/skindex/models"
	"golang.org/x/time/rate"
)

// Manager tries each configured source in priority order and returns the
// first non-empty result. There is no merging and no comparison across
// sources: differently-structured fetch paths could double-count rows, so
// first-success-wins is the whole discipline.
type Manager struct {
	sources []Source
	limiter *rate.Limiter
}

// NewManager creates a Manager over the given sources, in priority order.
// The limiter throttles outbound fetch attempts against the wiki; pass nil
// to disable throttling.
func NewManager(limiter *rate.Limiter, sources ...Source) *Manager {
	return &Manager{sources: sources, limiter: limiter}
}

// GetPrices walks the source chain. A source error or an empty result moves
// on to the next source; exhaustion of the chain is the one fatal error.
func (m *Manager) GetPrices(ctx context.Context) ([]int, error) {
	var lastErr error

	for _, src := range m.sources {
		if m.limiter != nil {
			if err := m.limiter.Wait(ctx); err != nil {
				return nil, categorizeError(err, "fetch throttle interrupted")
			}
		}

		slog.Info("trying price source", "source", src.Name())
		prices, err := src.Fetch(ctx)
		if err != nil {
			lastErr = err
			slog.Warn("price source failed", "source", src.Name(), "error", err)
			continue
		}
		if len(prices) == 0 {
			slog.Warn("price source returned no prices", "source", src.Name())
			continue
		}

		slog.Info("price source succeeded", "source", src.Name(), "prices", len(prices))
		return prices, nil
	}

	return nil, models.NewFetchError(
		models.ErrCodeExhausted,
		"all price sources failed",
		lastErr,
	)
}

// GetMarkup walks the chain for raw catalog markup, for the verification
// path. Sources that cannot produce markup are skipped.
func (m *Manager) GetMarkup(ctx context.Context) (string, error) {
	var lastErr error

	for _, src := range m.sources {
		mf, ok := src.(MarkupFetcher)
		if !ok {
			continue
		}
		if m.limiter != nil {
			if err := m.limiter.Wait(ctx); err != nil {
				return "", categorizeError(err, "fetch throttle interrupted")
			}
		}

		markup, err := mf.FetchMarkup(ctx)
		if err != nil {
			lastErr = err
			slog.Warn("markup fetch failed", "source", src.Name(), "error", err)
			continue
		}
		if markup != "" {
			return markup, nil
		}
	}

	return "", models.NewFetchError(
		models.ErrCodeExhausted,
		"all markup sources failed",
		lastErr,
	)
}

// GetTotal returns the sum of one source's prices.
func (m *Manager) GetTotal(ctx context.Context) (int, error) {
	prices, err := m.GetPrices(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, p := range prices {
		total += p
	}
	return total, nil
}

// GetStatistics re-runs the chain and summarises the result.
func (m *Manager) GetStatistics(ctx context.Context) (*models.PriceStats, error) {
	prices, err := m.GetPrices(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.PriceStats{
		TotalSkins: len(prices),
		MinPrice:   prices[0],
		MaxPrice:   prices[0],
	}
	for _, p := range prices {
		stats.TotalPrice += p
		if p < stats.MinPrice {
			stats.MinPrice = p
		}
		if p > stats.MaxPrice {
			stats.MaxPrice = p
		}
	}
	stats.AveragePrice = float64(stats.TotalPrice) / float64(len(prices))
	stats.PriceRange = stats.MaxPrice - stats.MinPrice
	return stats, nil
}
