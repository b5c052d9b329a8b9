package services

import (
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// Ensure ViewService implements the interface.
var _ driving.ViewResolver = (*ViewService)(nil)

// ViewService exposes the resolver and slice renderer without state.
type ViewService struct{}

// NewViewService creates a view resolver.
func NewViewService() *ViewService {
	return &ViewService{}
}

// Modes returns the selectable modes for a dataset.
func (ViewService) Modes(dataset *domain.AnalysisResult) []domain.ViewMode {
	return AvailableModes(dataset)
}

// Resolve returns the centred view model for one mode.
func (ViewService) Resolve(dataset *domain.AnalysisResult, mode domain.ViewMode) domain.ResolvedView {
	return Resolve(dataset, mode)
}

// Slice renders one slice of a 2D mode.
func (ViewService) Slice(dataset *domain.AnalysisResult, mode domain.ViewMode, index int) (domain.SliceFrame, error) {
	if mode == domain.ViewVolumetric {
		return domain.SliceFrame{}, domain.ErrNotSliceMode
	}
	return RenderSlice(Resolve(dataset, mode), index), nil
}
