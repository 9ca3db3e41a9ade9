package models

// PriceResponse is the body of GET /api/v1/price.
type PriceResponse struct {
	Success    bool         `json:"success"`
	TotalVP    int          `json:"total_vp"`
	CacheHit   bool         `json:"cache_hit"`
	Statistics *PriceStats  `json:"statistics,omitempty"`
	Error      *ErrorDetail `json:"error,omitempty"`
}

// ConvertResponse is the body of GET /api/v1/convert.
type ConvertResponse struct {
	Success   bool         `json:"success"`
	Currency  string       `json:"currency"`
	TotalVP   int          `json:"total_vp"`
	Formatted string       `json:"formatted"`
	Error     *ErrorDetail `json:"error,omitempty"`
}

// CurrencyInfo describes one supported display currency.
type CurrencyInfo struct {
	Key       string  `json:"key"`
	Code      string  `json:"code"`
	BasePrice float64 `json:"base_price"`
}

// CurrenciesResponse is the body of GET /api/v1/currencies.
type CurrenciesResponse struct {
	Success    bool           `json:"success"`
	Currencies []CurrencyInfo `json:"currencies"`
}

// ReportResponse is the body of GET /api/v1/report.
type ReportResponse struct {
	Success  bool         `json:"success"`
	Analysis *Analysis    `json:"analysis,omitempty"`
	Report   string       `json:"report,omitempty"`
	Error    *ErrorDetail `json:"error,omitempty"`
}

// RefreshResponse is the body of POST /api/v1/refresh.
type RefreshResponse struct {
	Success      bool `json:"success"`
	CatalogCache bool `json:"catalog_cache_cleared"`
	FXCache      bool `json:"fx_cache_cleared"`
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CacheAge      string  `json:"catalog_cache_age,omitempty"`
}

// ErrorResponse is the generic failure envelope.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}
