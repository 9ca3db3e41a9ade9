package fx

import (
	"context"

	"github.com/use-agent/skindex/models"
)

// staticRates are approximate USD-based rates, refreshed by hand when they
// drift far enough to matter. Last pass: 2025-08.
var staticRates = map[string]float64{
	"USD": 1.0,
	"AUD": 1.53,
	"BRL": 5.45,
	"CAD": 1.37,
	"EUR": 0.92,
	"GBP": 0.78,
	"INR": 87.5,
	"MXN": 18.7,
	"MYR": 4.25,
	"NZD": 1.68,
	"RUB": 80.0,
	"SGD": 1.29,
	"TRY": 40.8,
}

// staticSource is the chain's last resort: a hardcoded approximate table.
type staticSource struct {
	base string
}

func newStaticSource(base string) *staticSource {
	return &staticSource{base: base}
}

func (s *staticSource) Name() string { return "static-table" }

func (s *staticSource) Fetch(context.Context) (map[string]float64, error) {
	if s.base != "USD" {
		return nil, models.NewFetchError(
			models.ErrCodeParse,
			"static rate table is USD-based",
			nil,
		)
	}

	rates := make(map[string]float64, len(staticRates))
	for code, rate := range staticRates {
		rates[code] = rate
	}
	return rates, nil
}
