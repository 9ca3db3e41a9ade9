// Package source implements the ordered fallback chain of catalog price
// sources: browser-rendered fetch first, plain HTTP second.
package source

import "context"

// Source is the capability every price source implements.
type Source interface {
	// Name returns the source identifier (e.g. "fandom-browser").
	Name() string

	// Fetch retrieves the catalog page and returns the extracted prices.
	Fetch(ctx context.Context) ([]int, error)
}

// MarkupFetcher is implemented by sources that can hand back the raw
// catalog markup. The verification path consumes markup directly instead of
// extracted prices.
type MarkupFetcher interface {
	FetchMarkup(ctx context.Context) (string, error)
}

// sessionResetter is implemented by sources that carry session state
// (cookies, cache) worth clearing between retry attempts.
type sessionResetter interface {
	ResetSession(ctx context.Context) error
}
