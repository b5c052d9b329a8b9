package driving

import "github.com/custodia-labs/brainview-cli/internal/core/domain"

// Visualizer owns the view mode and slice position for one loaded analysis
// and drives the renderers.
type Visualizer interface {
	// Load replaces the dataset wholesale and resets to the initial mode.
	// Returns domain.ErrUnrecognizedDataset for a dataset with no usable shape;
	// the state is reset to an empty view either way.
	Load(dataset *domain.AnalysisResult) error

	// Dataset returns the loaded analysis, or nil.
	Dataset() *domain.AnalysisResult

	// SetMode switches view mode. Always legal; re-centres the slice index.
	SetMode(mode domain.ViewMode) error

	// SetSliceIndex moves to a slice, clamping into range.
	// Returns domain.ErrNotSliceMode in the volumetric mode.
	SetSliceIndex(index int) error

	// StepSlice moves by delta slices, clamping into range.
	StepSlice(delta int) error

	// Hover records the region under the pointer. Empty clears it.
	Hover(key domain.RegionKey)

	// MarkSelected mirrors the region panel's selection into the view state.
	MarkSelected(key domain.RegionKey)

	// Modes returns the selectable modes for the loaded dataset.
	Modes() []domain.ViewMode

	// State returns a copy of the current view state.
	State() domain.ViewState

	// View returns the resolved view model for the current mode.
	View() domain.ResolvedView

	// SliceFrame renders the current 2D slice or empty state.
	SliceFrame() domain.SliceFrame

	// SceneMounted returns true while a volumetric scene is mounted.
	SceneMounted() bool

	// OnChange registers an observer called after every state change.
	OnChange(fn func(domain.ViewState)) (unregister func())

	// Close disposes any mounted scene.
	Close() error
}
