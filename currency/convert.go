package currency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/use-agent/skindex/fx"
)

// The VP→USD anchor: the 11,000 VP bundle sells for $100, so 1 VP is worth
// 1/110 of a dollar. All other currencies derive from this via FX rates.
const (
	anchorBundleVP  = 11000
	anchorBundleUSD = 100.0
)

// Converter renders a VP amount as a formatted string in a display
// currency. Failures surface as error-tagged strings, never as errors: the
// output feeds a user-facing label.
type Converter struct {
	provider *fx.Provider
	base     string
}

// NewConverter creates a Converter. base is the FX provider's base currency
// code (normally USD, matching the anchor).
func NewConverter(provider *fx.Provider, base string) *Converter {
	return &Converter{provider: provider, base: base}
}

// Convert turns amountVP into the display string for the given currency key.
func (c *Converter) Convert(ctx context.Context, amountVP int, key string) string {
	profile, ok := Catalog[key]
	if !ok {
		slog.Warn("unknown currency key", "key", key)
		return fmt.Sprintf("error: unknown currency %q", key)
	}

	usd := float64(amountVP) * anchorBundleUSD / anchorBundleVP

	amount := usd
	if profile.Code != c.base {
		rates, err := c.provider.Rates(ctx)
		if err != nil {
			slog.Warn("exchange rates unavailable", "error", err)
			return "error: exchange rates unavailable"
		}
		rate, ok := rates[profile.Code]
		if !ok {
			slog.Warn("no rate for currency", "code", profile.Code)
			return fmt.Sprintf("error: no rate for %s", profile.Code)
		}
		amount = usd * rate
	}

	return profile.FormatAmount(amount)
}
