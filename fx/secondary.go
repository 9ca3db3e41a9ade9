package fx

import (
	"context"

	"github.com/use-agent/skindex/models"
)

// secondarySource is the reserved slot for a second rate API between the
// live endpoint and the static table. No second API is wired yet, so Fetch
// fails unconditionally; the stage stays in the chain because its position
// defines the fallback order.
type secondarySource struct{}

func newSecondarySource() *secondarySource { return &secondarySource{} }

func (s *secondarySource) Name() string { return "secondary-rate-api" }

func (s *secondarySource) Fetch(context.Context) (map[string]float64, error) {
	return nil, models.NewFetchError(
		models.ErrCodeNetwork,
		"secondary rate API not configured",
		nil,
	)
}
