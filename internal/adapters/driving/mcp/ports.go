package mcp

import (
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Analysis reads the analysis library.
	Analysis driving.AnalysisService

	// Views resolves view modes and slice frames.
	Views driving.ViewResolver

	// Regions looks up region metadata. Optional.
	Regions driving.RegionDirectory
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Views == nil {
		return ErrMissingViewResolver
	}
	return nil
}
