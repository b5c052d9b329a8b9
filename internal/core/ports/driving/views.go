package driving

import "github.com/custodia-labs/brainview-cli/internal/core/domain"

// ViewResolver answers stateless view queries for any dataset. Unlike
// Visualizer it holds no position, so one instance serves many requests.
type ViewResolver interface {
	// Modes returns the selectable modes for a dataset.
	Modes(dataset *domain.AnalysisResult) []domain.ViewMode

	// Resolve returns the centred view model for one mode.
	Resolve(dataset *domain.AnalysisResult, mode domain.ViewMode) domain.ResolvedView

	// Slice renders one slice of a 2D mode, clamping index into range.
	// Returns domain.ErrNotSliceMode for the volumetric mode.
	Slice(dataset *domain.AnalysisResult, mode domain.ViewMode, index int) (domain.SliceFrame, error)
}
