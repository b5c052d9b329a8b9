package httpapi

import (
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

// Ports holds the driving ports the HTTP API needs.
type Ports struct {
	Analysis driving.AnalysisService
	Regions  driving.RegionDirectory
	Views    driving.ViewResolver

	// Scenes builds the scenes behind the frame stream. Optional: without
	// it the stream endpoint answers 501.
	Scenes *services.SceneBuilder
}

// Validate checks that all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Analysis == nil {
		return ErrMissingAnalysis
	}
	if p.Regions == nil {
		return ErrMissingRegions
	}
	if p.Views == nil {
		return ErrMissingViews
	}
	return nil
}
