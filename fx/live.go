package fx

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/use-agent/skindex/config"
	"github.com/use-agent/skindex/models"
)

// liveSource queries the open.er-api.com latest-rates endpoint.
type liveSource struct {
	client *resty.Client
	url    string
}

func newLiveSource(cfg config.FXConfig) *liveSource {
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Accept", "application/json")

	return &liveSource{
		client: client,
		url:    fmt.Sprintf("%s/%s", cfg.APIURL, cfg.BaseCode),
	}
}

func (s *liveSource) Name() string { return "open-er-api" }

// erAPIResponse is the subset of the endpoint's payload we consume.
type erAPIResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func (s *liveSource) Fetch(ctx context.Context) (map[string]float64, error) {
	var out erAPIResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(s.url)
	if err != nil {
		return nil, models.NewFetchError(models.ErrCodeNetwork, "rate API request failed", err)
	}
	if resp.IsError() {
		return nil, models.NewFetchError(
			models.ErrCodeNetwork,
			fmt.Sprintf("rate API returned HTTP %d", resp.StatusCode()),
			nil,
		)
	}
	if out.Result != "success" || len(out.Rates) == 0 {
		return nil, models.NewFetchError(models.ErrCodeParse, "rate API payload unusable", nil)
	}
	return out.Rates, nil
}
