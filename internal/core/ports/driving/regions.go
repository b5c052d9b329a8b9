package driving

import (
	"context"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// RegionSelector turns region picks into metadata fetches whose results
// always correspond to the most recent pick.
type RegionSelector interface {
	// Select marks key as selected and starts a fetch for it. Any earlier
	// in-flight fetch is invalidated.
	Select(ctx context.Context, key domain.RegionKey) error

	// ClosePanel clears the selection and drops any in-flight fetch.
	ClosePanel()

	// Panel returns a snapshot of the panel state.
	Panel() domain.RegionPanel

	// Subscribe registers an observer called after every panel change.
	Subscribe(fn func(domain.RegionPanel)) (cancel func())
}

// RegionDirectory answers one-off region queries outside the panel flow.
type RegionDirectory interface {
	// Info fetches metadata for a single region.
	Info(ctx context.Context, key domain.RegionKey) (*domain.RegionInfo, error)

	// Keys lists known regions when the lookup can enumerate them.
	Keys() []domain.RegionKey
}
