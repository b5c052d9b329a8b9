package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// Ensure VisualizationService implements the interface.
var _ driving.Visualizer = (*VisualizationService)(nil)

// VisualizationService is the view-mode and slice state machine. It owns
// the view state and at most one mounted volumetric scene.
type VisualizationService struct {
	builder *SceneBuilder
	surface driven.Surface

	mu      sync.Mutex
	dataset *domain.AnalysisResult
	modes   []domain.ViewMode
	state   domain.ViewState
	view    domain.ResolvedView
	scene   *SceneHandle

	obsMu     sync.Mutex
	observers map[int]func(domain.ViewState)
	nextObs   int
}

// NewVisualizationService creates a visualizer. surface may be nil for
// headless use, in which case the volumetric mode resolves its view but
// mounts no scene.
func NewVisualizationService(builder *SceneBuilder, surface driven.Surface) *VisualizationService {
	if builder == nil {
		builder = NewSceneBuilder(SceneOptions{FrameRate: domain.DefaultAppSettings().Display.FrameRate})
	}
	s := &VisualizationService{
		builder:   builder,
		surface:   surface,
		observers: make(map[int]func(domain.ViewState)),
	}
	s.reset()
	return s
}

// reset clears the dataset and returns to the empty initial state.
// Callers hold mu.
func (s *VisualizationService) reset() {
	s.disposeScene()
	s.dataset = nil
	s.modes = AvailableModes(nil)
	s.state = domain.ViewState{Mode: s.modes[0]}
	s.view = Resolve(nil, s.state.Mode)
}

// Load replaces the dataset and enters the initial mode.
func (s *VisualizationService) Load(dataset *domain.AnalysisResult) error {
	var err error
	s.mutate(func() {
		s.reset()
		if !dataset.Recognised() {
			err = domain.ErrUnrecognizedDataset
			return
		}
		s.dataset = dataset
		s.modes = AvailableModes(dataset)
		err = s.enter(InitialMode(dataset))
	})
	return err
}

// Dataset returns the loaded analysis, or nil.
func (s *VisualizationService) Dataset() *domain.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset
}

// SetMode switches view mode and re-centres the slice index.
func (s *VisualizationService) SetMode(mode domain.ViewMode) error {
	if mode == "" {
		return fmt.Errorf("%w: empty", domain.ErrUnknownViewMode)
	}
	var err error
	s.mutate(func() {
		err = s.enter(mode)
	})
	return err
}

// enter applies a mode transition. The previous scene is always disposed
// before a new one is mounted. Callers hold mu.
func (s *VisualizationService) enter(mode domain.ViewMode) error {
	s.disposeScene()

	s.view = Resolve(s.dataset, mode)
	s.state.Mode = mode
	s.state.SliceCount = s.view.SliceCount
	s.state.SliceIndex = s.view.SliceIndex
	s.state.HoveredRegion = ""

	if mode != domain.ViewVolumetric || s.surface == nil || s.view.Empty() {
		return nil
	}
	scene, err := s.builder.BuildAndMount(s.view.Voxels.Samples, s.surface)
	if err != nil {
		sceneLog.Warn("volumetric scene not mounted: %v", err)
		return fmt.Errorf("entering %s mode: %w", mode, err)
	}
	s.scene = scene
	return nil
}

func (s *VisualizationService) disposeScene() {
	if s.scene == nil {
		return
	}
	s.scene.Dispose()
	s.scene = nil
}

// SetSliceIndex moves to a slice, clamping into range.
func (s *VisualizationService) SetSliceIndex(index int) error {
	return s.moveSlice(func(int) int { return index })
}

// StepSlice moves by delta slices, clamping into range.
func (s *VisualizationService) StepSlice(delta int) error {
	return s.moveSlice(func(current int) int { return current + delta })
}

// moveSlice computes and clamps the target index against the mode that is
// current under the same lock.
func (s *VisualizationService) moveSlice(target func(current int) int) error {
	var err error
	s.mutate(func() {
		if s.state.Mode == domain.ViewVolumetric {
			err = domain.ErrNotSliceMode
			return
		}
		s.state.SliceIndex = domain.ClampIndex(target(s.state.SliceIndex), s.state.SliceCount)
	})
	return err
}

// Hover records the region under the pointer.
func (s *VisualizationService) Hover(key domain.RegionKey) {
	s.mutate(func() {
		s.state.HoveredRegion = key
	})
}

// MarkSelected records the selected region in the view state.
func (s *VisualizationService) MarkSelected(key domain.RegionKey) {
	s.mutate(func() {
		s.state.SelectedRegion = key
	})
}

// Modes returns the selectable modes.
func (s *VisualizationService) Modes() []domain.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ViewMode, len(s.modes))
	copy(out, s.modes)
	return out
}

// State returns a copy of the view state.
func (s *VisualizationService) State() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns the resolved view for the current mode.
func (s *VisualizationService) View() domain.ResolvedView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SliceFrame renders the current slice.
func (s *VisualizationService) SliceFrame() domain.SliceFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RenderSlice(s.view, s.state.SliceIndex)
}

// SceneMounted returns true while a volumetric scene is mounted.
func (s *VisualizationService) SceneMounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene != nil && !s.scene.Disposed()
}

// Scene returns the mounted scene handle, or nil.
func (s *VisualizationService) Scene() *SceneHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// OnChange registers an observer called after every state change.
func (s *VisualizationService) OnChange(fn func(domain.ViewState)) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

// Close disposes any mounted scene.
func (s *VisualizationService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposeScene()
	return nil
}

// mutate runs fn under the state lock, then notifies observers outside it.
func (s *VisualizationService) mutate(fn func()) {
	s.mu.Lock()
	fn()
	state := s.state
	s.mu.Unlock()

	s.obsMu.Lock()
	fns := make([]func(domain.ViewState), 0, len(s.observers))
	for _, o := range s.observers {
		fns = append(fns, o)
	}
	s.obsMu.Unlock()

	for _, o := range fns {
		o(state)
	}
}
