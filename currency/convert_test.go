package currency

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/use-agent/skindex/cache"
	"github.com/use-agent/skindex/fx"
	"github.com/use-agent/skindex/models"
)

type stubRates struct {
	rates map[string]float64
	err   error
}

func (s stubRates) Name() string { return "stub" }

func (s stubRates) Fetch(context.Context) (map[string]float64, error) {
	return s.rates, s.err
}

func newConverter(t *testing.T, src fx.RateSource) *Converter {
	t.Helper()
	store := cache.NewStore[map[string]float64](
		filepath.Join(t.TempDir(), "fx_rates.json"), "rates", time.Hour)
	return NewConverter(fx.NewProviderWithSources("USD", store, src), "USD")
}

func TestConvert_USDAnchor(t *testing.T) {
	// The base currency never touches the rate provider, so a failing source
	// must not matter here.
	c := newConverter(t, stubRates{err: models.NewFetchError(models.ErrCodeNetwork, "down", nil)})

	// The 11,000 VP bundle is the $100 anchor.
	if got := c.Convert(context.Background(), 11000, "United States Dollar ($)"); got != "$100" {
		t.Errorf("Convert(11000) = %q, want %q", got, "$100")
	}
	if got := c.Convert(context.Background(), 5500, "United States Dollar ($)"); got != "$50" {
		t.Errorf("Convert(5500) = %q, want %q", got, "$50")
	}
	// 81,930 VP → $744.81..., rounded to the whole dollar.
	if got := c.Convert(context.Background(), 81930, "United States Dollar ($)"); got != "$745" {
		t.Errorf("Convert(81930) = %q, want %q", got, "$745")
	}
}

func TestConvert_ForeignRate(t *testing.T) {
	c := newConverter(t, stubRates{rates: map[string]float64{"EUR": 0.9, "INR": 87.5}})

	if got := c.Convert(context.Background(), 11000, "Euro (€)"); got != "€90" {
		t.Errorf("Convert EUR = %q, want %q", got, "€90")
	}
	// Large amounts pick up thousands separators.
	if got := c.Convert(context.Background(), 11000, "Indian Rupee (₹)"); got != "₹8,750" {
		t.Errorf("Convert INR = %q, want %q", got, "₹8,750")
	}
}

func TestConvert_UnknownCurrency(t *testing.T) {
	c := newConverter(t, stubRates{rates: map[string]float64{"EUR": 0.9}})

	got := c.Convert(context.Background(), 11000, "Dogecoin (Ð)")
	want := `error: unknown currency "Dogecoin (Ð)"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvert_MissingRate(t *testing.T) {
	c := newConverter(t, stubRates{rates: map[string]float64{"EUR": 0.9}})

	got := c.Convert(context.Background(), 11000, "Pound Sterling (£)")
	if got != "error: no rate for GBP" {
		t.Errorf("got %q, want %q", got, "error: no rate for GBP")
	}
}

func TestConvert_RatesUnavailable(t *testing.T) {
	c := newConverter(t, stubRates{err: models.NewFetchError(models.ErrCodeNetwork, "down", nil)})

	got := c.Convert(context.Background(), 11000, "Euro (€)")
	if got != "error: exchange rates unavailable" {
		t.Errorf("got %q, want %q", got, "error: exchange rates unavailable")
	}
}

func TestKeys_SortedAndComplete(t *testing.T) {
	keys := Keys()
	if len(keys) != len(Catalog) {
		t.Fatalf("Keys() returned %d entries, want %d", len(keys), len(Catalog))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("keys out of order: %q before %q", keys[i-1], keys[i])
		}
	}
}
