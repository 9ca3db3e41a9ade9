// Package pricer ties the source chain to the catalog cache: cache-first
// reads of the aggregate VP total, with the individual prices discarded
// after summation.
package pricer

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/skindex/cache"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/source"
)

// Fetcher produces the catalog's total price in VP.
type Fetcher struct {
	manager *source.Manager
	store   *cache.Store[int]
}

// NewFetcher creates a Fetcher over the given source chain and cache store.
func NewFetcher(manager *source.Manager, store *cache.Store[int]) *Fetcher {
	return &Fetcher{manager: manager, store: store}
}

// TotalPrice returns the aggregate catalog price in VP, and whether it came
// from cache. On a miss the source chain runs and the result is persisted.
func (f *Fetcher) TotalPrice(ctx context.Context) (int, bool, error) {
	if total, ok := f.store.Read(); ok {
		slog.Info("using cached skin prices", "totalVP", total)
		return total, true, nil
	}

	total, err := f.manager.GetTotal(ctx)
	if err != nil {
		return 0, false, err
	}

	f.store.Write(total)
	slog.Info("fetched total skin price", "totalVP", total)
	return total, false, nil
}

// Statistics re-runs the source chain and summarises the fetched prices.
// Individual prices are never cached, so this always fetches.
func (f *Fetcher) Statistics(ctx context.Context) (*models.PriceStats, error) {
	return f.manager.GetStatistics(ctx)
}

// RefreshCache forces the next TotalPrice call to fetch fresh data.
func (f *Fetcher) RefreshCache() {
	f.store.Invalidate()
}

// CacheAge reports the age of the persisted total, if any.
func (f *Fetcher) CacheAge() (time.Duration, bool) {
	return f.store.Age()
}
