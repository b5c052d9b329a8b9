package driven

import (
	"context"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// RegionLookup resolves region metadata. The transport is up to the
// adapter: an embedded catalog, a remote HTTP service, or anything else.
type RegionLookup interface {
	// Lookup returns the metadata for a region key.
	// Returns domain.ErrUnknownRegion if the key has no entry.
	Lookup(ctx context.Context, key domain.RegionKey) (*domain.RegionInfo, error)
}

// RegionCatalog is a RegionLookup that can also enumerate its keys.
type RegionCatalog interface {
	RegionLookup

	// Keys returns all known region keys, sorted.
	Keys() []domain.RegionKey
}
