package source

import (
	"context"
	"errors"
	"testing"

	"github.com/use-agent/skindex/models"
)

// fakeSource yields a fixed result; it deliberately does not implement
// MarkupFetcher or sessionResetter.
type fakeSource struct {
	name    string
	prices  []int
	err     error
	fetches int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(context.Context) ([]int, error) {
	f.fetches++
	return f.prices, f.err
}

// fakeMarkupSource additionally serves raw markup.
type fakeMarkupSource struct {
	fakeSource
	markup string
}

func (f *fakeMarkupSource) FetchMarkup(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.markup, nil
}

func TestManager_FirstSuccessWins(t *testing.T) {
	a := &fakeSource{name: "a", prices: []int{1775, 2175}}
	b := &fakeSource{name: "b", prices: []int{9999}}
	m := NewManager(nil, a, b)

	prices, err := m.GetPrices(context.Background())
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}

	// The winner's result is returned verbatim; later sources never run.
	if len(prices) != 2 || prices[0] != 1775 || prices[1] != 2175 {
		t.Errorf("got %v, want [1775 2175]", prices)
	}
	if b.fetches != 0 {
		t.Errorf("second source fetched %d times, want 0", b.fetches)
	}
}

func TestManager_FallsThroughOnError(t *testing.T) {
	a := &fakeSource{name: "a", err: models.NewFetchError(models.ErrCodeNetwork, "boom", nil)}
	b := &fakeSource{name: "b", prices: []int{875}}
	m := NewManager(nil, a, b)

	prices, err := m.GetPrices(context.Background())
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if len(prices) != 1 || prices[0] != 875 {
		t.Errorf("got %v, want [875]", prices)
	}
}

func TestManager_FallsThroughOnEmptyResult(t *testing.T) {
	a := &fakeSource{name: "a"} // no error, no prices
	b := &fakeSource{name: "b", prices: []int{875}}
	m := NewManager(nil, a, b)

	prices, err := m.GetPrices(context.Background())
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if len(prices) != 1 || prices[0] != 875 {
		t.Errorf("got %v, want [875]", prices)
	}
}

func TestManager_Exhausted(t *testing.T) {
	inner := models.NewFetchError(models.ErrCodeTimeout, "slow wiki", nil)
	a := &fakeSource{name: "a", err: models.NewFetchError(models.ErrCodeNetwork, "boom", nil)}
	b := &fakeSource{name: "b", err: inner}
	m := NewManager(nil, a, b)

	_, err := m.GetPrices(context.Background())
	if err == nil {
		t.Fatal("expected an error when every source fails")
	}

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *models.FetchError, got %T", err)
	}
	if fetchErr.Code != models.ErrCodeExhausted {
		t.Errorf("error code = %q, want %q", fetchErr.Code, models.ErrCodeExhausted)
	}
	if !errors.Is(err, inner) {
		t.Error("exhaustion error should wrap the last source error")
	}
}

func TestManager_GetTotal(t *testing.T) {
	a := &fakeSource{name: "a", prices: []int{1000, 2000, 875}}
	m := NewManager(nil, a)

	total, err := m.GetTotal(context.Background())
	if err != nil {
		t.Fatalf("GetTotal: %v", err)
	}
	if total != 3875 {
		t.Errorf("total = %d, want 3875", total)
	}
}

func TestManager_GetStatistics(t *testing.T) {
	a := &fakeSource{name: "a", prices: []int{1000, 2000, 3000}}
	m := NewManager(nil, a)

	stats, err := m.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalSkins != 3 || stats.TotalPrice != 6000 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.MinPrice != 1000 || stats.MaxPrice != 3000 || stats.PriceRange != 2000 {
		t.Errorf("unexpected range: %+v", stats)
	}
	if stats.AveragePrice != 2000 {
		t.Errorf("average = %v, want 2000", stats.AveragePrice)
	}
}

func TestManager_GetMarkup_SkipsNonMarkupSources(t *testing.T) {
	a := &fakeSource{name: "a", prices: []int{875}}
	b := &fakeMarkupSource{fakeSource: fakeSource{name: "b"}, markup: "<table></table>"}
	m := NewManager(nil, a, b)

	markup, err := m.GetMarkup(context.Background())
	if err != nil {
		t.Fatalf("GetMarkup: %v", err)
	}
	if markup != "<table></table>" {
		t.Errorf("got %q", markup)
	}
}

func TestManager_GetMarkup_Exhausted(t *testing.T) {
	a := &fakeSource{name: "a", prices: []int{875}}
	b := &fakeMarkupSource{fakeSource: fakeSource{
		name: "b",
		err:  models.NewFetchError(models.ErrCodeNetwork, "boom", nil),
	}}
	m := NewManager(nil, a, b)

	_, err := m.GetMarkup(context.Background())
	if err == nil {
		t.Fatal("expected an error when no source can serve markup")
	}

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *models.FetchError, got %T", err)
	}
	if fetchErr.Code != models.ErrCodeExhausted {
		t.Errorf("error code = %q, want %q", fetchErr.Code, models.ErrCodeExhausted)
	}
}
