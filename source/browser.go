package source

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/skindex/config"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/wiki"
	"github.com/ysmood/gson"
)

// BrowserSource fetches the catalog page through a headless browser. The
// wiki renders its tables client-side under some A/B buckets, so this is the
// primary source; the plain-HTTP source only sees server-rendered markup.
type BrowserSource struct {
	browser    *rod.Browser
	browserCfg config.BrowserConfig
	fetchCfg   config.FetchConfig
}

// NewBrowserSource launches a headless browser and connects to it.
func NewBrowserSource(browserCfg config.BrowserConfig, fetchCfg config.FetchConfig) (*BrowserSource, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewFetchError(
			models.ErrCodeNetwork,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewFetchError(
			models.ErrCodeNetwork,
			"failed to connect to browser",
			err,
		)
	}

	return &BrowserSource{
		browser:    browser,
		browserCfg: browserCfg,
		fetchCfg:   fetchCfg,
	}, nil
}

func (s *BrowserSource) Name() string { return "fandom-browser" }

// Fetch navigates to the catalog URL, waits for the rendered tables and
// extracts prices from the resulting markup.
func (s *BrowserSource) Fetch(ctx context.Context) ([]int, error) {
	rawHTML, err := s.FetchMarkup(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, models.NewFetchError(models.ErrCodeParse, "failed to parse rendered markup", err)
	}
	return wiki.ExtractPrices(doc)
}

// ResetSession clears all browser cookies so a retry starts fresh.
func (s *BrowserSource) ResetSession(context.Context) error {
	return s.browser.SetCookies(nil)
}

// FetchMarkup drives one page lifecycle and returns the rendered HTML.
//
// Lifecycle:
//  1. Create page              – one tab per fetch, closed on return
//  2. Stealth injection        – mask navigator.webdriver (before navigation!)
//  3. Extra headers            – Google Referer, like a search visitor
//  4. Idle listener setup      – MUST be registered before Navigate
//  5. Navigate + network idle  – bounded by NavigationTimeout
//  6. Selector wait            – bounded by SelectorTimeout
//  7. Extract rendered HTML
func (s *BrowserSource) FetchMarkup(ctx context.Context) (string, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", models.NewFetchError(models.ErrCodeNetwork, "failed to open page", err)
	}
	defer func() { _ = page.Close() }()

	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
	}

	if u, parseErr := url.Parse(s.fetchCfg.CatalogURL); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{
				"Referer":         "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname()),
				"Accept-Language": "en-US,en;q=0.9",
			}),
		}.Call(page)
	}

	// Navigation plus the network-idle wait share one deadline.
	navCtx, navCancel := context.WithTimeout(ctx, s.browserCfg.NavigationTimeout)
	defer navCancel()
	p := page.Context(navCtx)

	// Idle listener before Navigate, otherwise in-flight requests are
	// missed and the wait returns instantly.
	waitIdle := p.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)

	if navErr := p.Navigate(s.fetchCfg.CatalogURL); navErr != nil {
		return "", categorizeError(navErr, "navigation to catalog page failed")
	}
	waitIdle()

	// The tables render after the page shell; give them their own bounded wait.
	selCtx, selCancel := context.WithTimeout(ctx, s.browserCfg.SelectorTimeout)
	defer selCancel()
	if _, selErr := page.Context(selCtx).Element(wiki.TableSelector); selErr != nil {
		return "", models.NewFetchError(
			models.ErrCodeParse,
			"catalog tables never appeared",
			selErr,
		)
	}

	rawHTML, htmlErr := page.HTML()
	if htmlErr != nil {
		return "", categorizeError(htmlErr, "failed to extract page HTML")
	}
	return rawHTML, nil
}

// Close kills the browser process. Call on shutdown to prevent zombie
// Chrome processes.
func (s *BrowserSource) Close() {
	slog.Info("browser source shutting down")
	s.browser.MustClose()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw errors into typed FetchErrors so callers can
// tell a timeout from a navigation failure.
func categorizeError(err error, msg string) *models.FetchError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewFetchError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewFetchError(models.ErrCodeTimeout, "fetch canceled", err)
	default:
		return models.NewFetchError(models.ErrCodeNetwork, msg, err)
	}
}
