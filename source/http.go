package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	tls "github.com/refraction-networking/utls"
	"github.com/use-agent/skindex/config"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/wiki"
	"golang.org/x/net/html"
)

// HTTPSource fetches the catalog page with a plain GET. Cheaper than the
// browser, but it only sees server-rendered markup; anything requiring
// script execution fails here and stays with the browser source.
type HTTPSource struct {
	client *http.Client
	cfg    config.FetchConfig
}

// tableSel is the compiled catalog selector, used to pre-check the response
// before handing it to the extractor.
var tableSel = cascadia.MustCompile(wiki.TableSelector)

// NewHTTPSource creates an HTTPSource with a Chrome TLS fingerprint.
// Fandom sits behind bot protection that profiles the ClientHello, so the
// default Go fingerprint gets served a challenge page.
func NewHTTPSource(cfg config.FetchConfig) *HTTPSource {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialTLSChrome(ctx, network, addr)
		},
		ForceAttemptHTTP2: false,
	}
	return &HTTPSource{
		client: &http.Client{Transport: transport},
		cfg:    cfg,
	}
}

func (s *HTTPSource) Name() string { return "fandom-http" }

// Fetch issues the GET and extracts prices from the response body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]int, error) {
	body, err := s.FetchMarkup(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, models.NewFetchError(models.ErrCodeParse, "failed to parse response markup", err)
	}
	return wiki.ExtractPrices(doc)
}

// FetchMarkup issues the GET and returns the raw body after confirming the
// catalog tables are present.
func (s *HTTPSource) FetchMarkup(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.HTTPTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.CatalogURL, nil)
	if err != nil {
		return "", models.NewFetchError(models.ErrCodeNetwork, "failed to build request", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", categorizeError(err, "catalog request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", models.NewFetchError(
			models.ErrCodeNetwork,
			fmt.Sprintf("catalog request returned HTTP %d", resp.StatusCode),
			nil,
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20)) // 10 MB cap
	if err != nil {
		return "", models.NewFetchError(models.ErrCodeNetwork, "failed to read response body", err)
	}

	// A shell page without the catalog tables means the content is rendered
	// client-side; report that distinctly so the log tells the real story.
	if !hasCatalogTables(body) {
		return "", models.NewFetchError(
			models.ErrCodeParse,
			"response has no catalog tables; page likely requires scripting",
			nil,
		)
	}

	return string(body), nil
}

// hasCatalogTables runs the compiled selector over the raw body.
func hasCatalogTables(body []byte) bool {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return false
	}
	return cascadia.Query(doc, tableSel) != nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint,
// with ALPN locked to http/1.1 so the server never negotiates HTTP/2
// (which Go's http.Transport cannot handle over a utls connection).
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls.UClient(rawConn, &tls.Config{ServerName: host}, tls.HelloCustom)

	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		rawConn.Close()
		return nil, fmt.Errorf("httpsource: build tls spec: %w", err)
	}
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	if err := tlsConn.ApplyPreset(&spec); err != nil {
		rawConn.Close()
		return nil, fmt.Errorf("httpsource: apply tls spec: %w", err)
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
