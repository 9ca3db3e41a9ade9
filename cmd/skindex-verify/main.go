// Command skindex-verify fetches the catalog once, scores extraction quality
// and prints the verification report. Exit status 1 means the fetch failed;
// a poor-but-rendered report still exits 0.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/use-agent/skindex/config"
	"github.com/use-agent/skindex/source"
	"github.com/use-agent/skindex/verify"
)

func main() {
	expected := flag.Int("expected", verify.ExpectedSkinCount,
		"expected number of purchasable skins, for coverage scoring")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall fetch deadline")
	flag.Parse()

	cfg := config.Load()

	// Text logs at warn level: the report is the output, not the log stream.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	var sources []source.Source
	browserSrc, err := source.NewBrowserSource(cfg.Browser, cfg.Fetch)
	if err != nil {
		slog.Warn("browser source unavailable, continuing with HTTP only", "error", err)
	} else {
		defer browserSrc.Close()
		sources = append(sources, browserSrc)
	}
	sources = append(sources, source.NewHTTPSource(cfg.Fetch))

	limiter := rate.NewLimiter(rate.Limit(cfg.Fetch.RequestsPerSecond), cfg.Fetch.Burst)
	mgr := source.NewManager(limiter, sources...)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	markup, err := mgr.GetMarkup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(1)
	}

	analysis := verify.NewWithExpected(*expected).Analyze(ctx, markup)
	fmt.Println(verify.Render(analysis))
}
