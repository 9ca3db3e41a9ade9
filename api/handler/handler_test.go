package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skindex/cache"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/pricer"
)

func performRequest(h gin.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, "/", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestCurrencies(t *testing.T) {
	w := performRequest(Currencies(), http.MethodGet, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.CurrenciesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if len(resp.Currencies) != 13 {
		t.Errorf("got %d currencies, want 13", len(resp.Currencies))
	}
	for i := 1; i < len(resp.Currencies); i++ {
		if resp.Currencies[i-1].Key >= resp.Currencies[i].Key {
			t.Errorf("currencies out of order: %q before %q",
				resp.Currencies[i-1].Key, resp.Currencies[i].Key)
		}
	}
}

func TestConvert_UnknownCurrencyIsBadRequest(t *testing.T) {
	// Input validation happens before any fetching, so nil collaborators are
	// never touched.
	w := performRequest(Convert(nil, nil), http.MethodGet, "/?currency=Dogecoin")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeInvalidInput {
		t.Errorf("unexpected error payload: %+v", resp.Error)
	}
}

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{models.ErrCodeTimeout, http.StatusGatewayTimeout},
		{models.ErrCodeNetwork, http.StatusBadGateway},
		{models.ErrCodeExhausted, http.StatusBadGateway},
		{models.ErrCodeInvalidInput, http.StatusBadRequest},
		{models.ErrCodeRateLimited, http.StatusTooManyRequests},
		{models.ErrCodeParse, http.StatusInternalServerError},
		{models.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		got := mapErrorToStatus(models.NewFetchError(tt.code, "x", nil))
		if got != tt.want {
			t.Errorf("mapErrorToStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestHealth(t *testing.T) {
	store := cache.NewStore[int](filepath.Join(t.TempDir(), "skin_prices.json"), "price", time.Hour)
	f := pricer.NewFetcher(nil, store)

	start := time.Now().Add(-90 * time.Second)
	w := performRequest(Health(f, start), http.MethodGet, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.UptimeSeconds < 89 {
		t.Errorf("uptime = %v, want at least 89s", resp.UptimeSeconds)
	}
}
