package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// fakeSurface records mounts, resize listeners and presented frames.
type fakeSurface struct {
	mu        sync.Mutex
	width     int
	height    int
	owner     string
	mounts    int
	unmounts  int
	listeners map[int]func(int, int)
	nextID    int
	frames    []domain.Frame
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{width: w, height: h, listeners: make(map[int]func(int, int))}
}

func (s *fakeSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *fakeSurface) OnResize(fn func(int, int)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *fakeSurface) Mount(owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner != "" {
		return domain.ErrSurfaceBusy
	}
	s.owner = owner
	s.mounts++
	return nil
}

func (s *fakeSurface) Unmount(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner != owner {
		return
	}
	s.owner = ""
	s.unmounts++
}

func (s *fakeSurface) Present(frame domain.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, frame)
}

func (s *fakeSurface) resize(w, h int) {
	s.mu.Lock()
	s.width, s.height = w, h
	fns := make([]func(int, int), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(w, h)
	}
}

func (s *fakeSurface) listenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *fakeSurface) frameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *fakeSurface) lastFrame() domain.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames[len(s.frames)-1]
}

func (s *fakeSurface) mounted() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// sliceSet builds n slices with images and overlays.
func sliceSet(n int) domain.SliceSet {
	set := domain.SliceSet{Slices: make([]domain.Slice, n)}
	for i := range set.Slices {
		set.Slices[i] = domain.Slice{
			Index:    i,
			Position: float64(i) / float64(max(n-1, 1)),
			Image:    domain.ImageRef(fmt.Sprintf("img-%d", i)),
			Overlay:  domain.ImageRef(fmt.Sprintf("ovl-%d", i)),
		}
	}
	return set
}

func viewsDataset(views map[domain.ViewMode]int) *domain.AnalysisResult {
	brain := domain.BrainData{Shape: domain.ShapeViews, Views: make(map[domain.ViewMode]domain.SliceSet)}
	for mode, n := range views {
		brain.Views[mode] = sliceSet(n)
	}
	return &domain.AnalysisResult{ID: "a1", Name: "test", Brain: brain}
}

func flatDataset(n int) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		ID:    "a2",
		Name:  "flat",
		Brain: domain.BrainData{Shape: domain.ShapeFlat, Flat: sliceSet(n)},
	}
}

func voxelSamples() []domain.VoxelSample {
	return []domain.VoxelSample{
		{X: 50, Y: 50, Z: 50, Value: 0.9},
		{X: 10, Y: 20, Z: 30, Value: 0.7},
		{X: 80, Y: 40, Z: 60, Value: 0.3},
		{X: 25, Y: 75, Z: 50, Value: 0.1},
		{X: 60, Y: 60, Z: 60, Value: 0.6},
	}
}
