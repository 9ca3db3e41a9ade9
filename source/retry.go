package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/skindex/models"
)

// retrySource re-runs a source's fetch with exponential backoff. Session
// state is cleared before every attempt when the source supports it, so a
// poisoned cookie jar cannot fail all attempts the same way.
type retrySource struct {
	inner       Source
	maxAttempts int
	sleep       func(context.Context, time.Duration) error
}

// WithRetry wraps src so that Fetch makes up to maxAttempts attempts,
// sleeping 2^attempt seconds between failures. The first attempt producing
// a non-empty result returns immediately; after the budget is spent the
// last error propagates.
func WithRetry(src Source, maxAttempts int) Source {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &retrySource{
		inner:       src,
		maxAttempts: maxAttempts,
		sleep:       sleepCtx,
	}
}

func (r *retrySource) Name() string { return r.inner.Name() }

func (r *retrySource) Fetch(ctx context.Context) ([]int, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		slog.Info("fetch attempt", "source", r.inner.Name(),
			"attempt", attempt+1, "maxAttempts", r.maxAttempts)

		if resetter, ok := r.inner.(sessionResetter); ok {
			if err := resetter.ResetSession(ctx); err != nil {
				slog.Warn("session reset failed", "source", r.inner.Name(), "error", err)
			}
		}

		prices, err := r.inner.Fetch(ctx)
		if err == nil && len(prices) > 0 {
			slog.Info("fetch attempt succeeded", "source", r.inner.Name(),
				"attempt", attempt+1, "prices", len(prices))
			return prices, nil
		}

		if err != nil {
			lastErr = err
			slog.Warn("fetch attempt failed", "source", r.inner.Name(),
				"attempt", attempt+1, "error", err)
		} else {
			lastErr = models.NewFetchError(models.ErrCodeParse, "source returned no prices", nil)
			slog.Warn("fetch attempt returned no prices", "source", r.inner.Name(),
				"attempt", attempt+1)
		}

		if attempt < r.maxAttempts-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			if err := r.sleep(ctx, backoff); err != nil {
				return nil, categorizeError(err, "retry backoff interrupted")
			}
		}
	}

	return nil, lastErr
}

// FetchMarkup forwards to the wrapped source without retries; the
// verification path is advisory and tolerates a single failed attempt.
func (r *retrySource) FetchMarkup(ctx context.Context) (string, error) {
	mf, ok := r.inner.(MarkupFetcher)
	if !ok {
		return "", models.NewFetchError(models.ErrCodeInternal, "source cannot fetch raw markup", nil)
	}
	return mf.FetchMarkup(ctx)
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
