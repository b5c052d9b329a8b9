package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// Ensure RegionService implements the interface.
var _ driving.RegionDirectory = (*RegionService)(nil)

// RegionService answers one-off region queries.
type RegionService struct {
	lookup driven.RegionLookup
}

// NewRegionService creates a region directory over a lookup.
func NewRegionService(lookup driven.RegionLookup) *RegionService {
	return &RegionService{lookup: lookup}
}

// Info fetches metadata for one region.
func (s *RegionService) Info(ctx context.Context, key domain.RegionKey) (*domain.RegionInfo, error) {
	if key == "" {
		return nil, domain.ErrEmptyRegionKey
	}
	info, err := s.lookup.Lookup(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("looking up region %s: %w", key, err)
	}
	if info == nil {
		return nil, fmt.Errorf("looking up region %s: %w", key, domain.ErrUnknownRegion)
	}
	if info.Key == "" {
		info.Key = key
	}
	return info, nil
}

// Keys lists known regions, or nil when the lookup cannot enumerate.
func (s *RegionService) Keys() []domain.RegionKey {
	if catalog, ok := s.lookup.(driven.RegionCatalog); ok {
		return catalog.Keys()
	}
	return nil
}
