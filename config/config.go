package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Fetch     FetchConfig
	Cache     CacheConfig
	FX        FXConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// NavigationTimeout bounds navigation plus the network-idle wait.
	NavigationTimeout time.Duration // default: 30s

	// SelectorTimeout bounds the wait for the catalog table selector.
	SelectorTimeout time.Duration // default: 10s
}

// FetchConfig controls catalog fetching behavior.
type FetchConfig struct {
	// CatalogURL is the wiki page holding the weapon skin tables.
	CatalogURL string // default: the Fandom Weapon_Skins page

	// UserAgent is sent on plain-HTTP fetches.
	UserAgent string

	// HTTPTimeout is the deadline for the plain-HTTP source.
	HTTPTimeout time.Duration // default: 10s

	// MaxAttempts is the retry budget per source.
	MaxAttempts int // default: 3

	// RequestsPerSecond throttles outbound fetches against the wiki.
	RequestsPerSecond float64 // default: 1

	// Burst is the outbound limiter burst size.
	Burst int // default: 2
}

// CacheConfig controls the persisted TTL caches.
type CacheConfig struct {
	// Dir is the directory holding the cache files.
	Dir string // default: "cache"

	// CatalogTTL is the freshness window for the aggregate total.
	CatalogTTL time.Duration // default: 6h

	// FXTTL is the freshness window for the exchange-rate table.
	FXTTL time.Duration // default: 24h
}

// FXConfig controls the exchange-rate provider.
type FXConfig struct {
	// APIURL is the live rate endpoint; the base code is appended.
	APIURL string // default: "https://open.er-api.com/v6/latest"

	// BaseCode is the anchor currency for all rates.
	BaseCode string // default: "USD"

	// Timeout is the deadline for one rate API call.
	Timeout time.Duration // default: 10s
}

// RateLimitConfig controls per-client API rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client IP.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SKINDEX_HOST", "0.0.0.0"),
			Port: envIntOr("SKINDEX_PORT", 8080),
			Mode: envOr("SKINDEX_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:          envBoolOr("SKINDEX_HEADLESS", true),
			NoSandbox:         envBoolOr("SKINDEX_NO_SANDBOX", false),
			BrowserBin:        os.Getenv("SKINDEX_BROWSER_BIN"),
			NavigationTimeout: envDurationOr("SKINDEX_NAV_TIMEOUT", 30*time.Second),
			SelectorTimeout:   envDurationOr("SKINDEX_SELECTOR_TIMEOUT", 10*time.Second),
		},
		Fetch: FetchConfig{
			CatalogURL:        envOr("SKINDEX_CATALOG_URL", "https://valorant.fandom.com/wiki/Weapon_Skins"),
			UserAgent:         envOr("SKINDEX_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
			HTTPTimeout:       envDurationOr("SKINDEX_HTTP_TIMEOUT", 10*time.Second),
			MaxAttempts:       envIntOr("SKINDEX_MAX_ATTEMPTS", 3),
			RequestsPerSecond: envFloatOr("SKINDEX_FETCH_RPS", 1.0),
			Burst:             envIntOr("SKINDEX_FETCH_BURST", 2),
		},
		Cache: CacheConfig{
			Dir:        envOr("SKINDEX_CACHE_DIR", "cache"),
			CatalogTTL: envDurationOr("SKINDEX_CATALOG_TTL", 6*time.Hour),
			FXTTL:      envDurationOr("SKINDEX_FX_TTL", 24*time.Hour),
		},
		FX: FXConfig{
			APIURL:   envOr("SKINDEX_FX_API_URL", "https://open.er-api.com/v6/latest"),
			BaseCode: envOr("SKINDEX_FX_BASE", "USD"),
			Timeout:  envDurationOr("SKINDEX_FX_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SKINDEX_RATE_RPS", 5.0),
			Burst:             envIntOr("SKINDEX_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("SKINDEX_LOG_LEVEL", "info"),
			Format: envOr("SKINDEX_LOG_FORMAT", "json"),
		},
	}
}

// CatalogCachePath is the JSON file holding the cached aggregate total.
func (c CacheConfig) CatalogCachePath() string {
	return filepath.Join(c.Dir, "skin_prices.json")
}

// FXCachePath is the JSON file holding the cached exchange-rate table.
func (c CacheConfig) FXCachePath() string {
	return filepath.Join(c.Dir, "fx_rates.json")
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
