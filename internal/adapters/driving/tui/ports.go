// Package tui provides an interactive terminal user interface for brainview.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/surface"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Visualizer owns the view mode and slice position.
	Visualizer driving.Visualizer

	// Regions runs region selections and holds the panel state.
	Regions driving.RegionSelector

	// Analysis lists and opens stored analyses. Optional.
	Analysis driving.AnalysisService

	// Surface receives volumetric frames. Optional; without it the
	// volume view shows only its empty state.
	Surface *surface.Headless
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(visualizer driving.Visualizer, regions driving.RegionSelector) *Ports {
	return &Ports{
		Visualizer: visualizer,
		Regions:    regions,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Visualizer == nil {
		return ErrMissingVisualizer
	}
	if p.Regions == nil {
		return ErrMissingRegionSelector
	}
	return nil
}
