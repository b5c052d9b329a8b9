package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/logger"
)

var sceneLog = logger.Scoped("scene")

// SceneOptions configures the volumetric scene builder.
type SceneOptions struct {
	// FrameRate is the render loop rate. Values outside the supported
	// range are clamped.
	FrameRate int

	// Seed fixes the decorative randomness. Zero picks a random seed.
	Seed int64

	// Now overrides the clock, for tests.
	Now func() time.Time

	// Manual disables the render loop; frames are produced only by Step.
	Manual bool
}

// SceneBuilder mounts volumetric scenes onto host surfaces.
type SceneBuilder struct {
	opts SceneOptions
}

// NewSceneBuilder creates a scene builder.
func NewSceneBuilder(opts SceneOptions) *SceneBuilder {
	if opts.FrameRate < domain.MinFrameRate {
		opts.FrameRate = domain.MinFrameRate
	}
	if opts.FrameRate > domain.MaxFrameRate {
		opts.FrameRate = domain.MaxFrameRate
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SceneBuilder{opts: opts}
}

// BuildAndMount constructs the anatomy and activation field for samples,
// claims the surface and starts the render loop. The caller owns the
// returned handle and must Dispose it.
func (b *SceneBuilder) BuildAndMount(samples []domain.VoxelSample, surface driven.Surface) (*SceneHandle, error) {
	if surface == nil {
		return nil, domain.ErrNoSurface
	}

	id := uuid.NewString()
	if err := surface.Mount(id); err != nil {
		return nil, fmt.Errorf("mounting scene: %w", err)
	}

	seed := b.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // decorative only

	h := &SceneHandle{
		id:        id,
		surface:   surface,
		now:       b.opts.Now,
		resources: newResourceTracker(),
		lights:    sceneLights(),
		done:      make(chan struct{}),
	}
	h.anatomy = buildAnatomy(rng)
	for _, m := range h.anatomy.Meshes {
		h.resources.track(resourceGeometry, m.Name)
		h.resources.track(resourceMaterial, m.Name)
	}

	field := classifySamples(samples, rng)
	h.spheres = field.spheres
	h.points = field.points
	if len(h.spheres) > 0 {
		h.resources.track(resourceGeometry, "activation-point")
	}
	for i := range h.spheres {
		name := fmt.Sprintf("activation-%d", i)
		h.resources.track(resourceMaterial, name)
		h.resources.track(resourceGeometry, name+"-glow")
		h.resources.track(resourceMaterial, name+"-glow")
	}
	if h.points != nil {
		h.resources.track(resourceBuffer, "ambient-points")
		h.resources.track(resourceMaterial, "ambient-points")
	}

	h.width, h.height = surface.Size()
	h.camera = sceneCamera(h.width, h.height)
	h.unregisterResize = surface.OnResize(h.resize)
	h.start = h.now()

	sceneLog.Debug("mounted %s: %d spheres, %d points, %d resources",
		id, len(h.spheres), h.points.Len(), h.resources.live())

	h.Step()

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	if b.opts.Manual {
		close(h.done)
	} else {
		go h.loop(ctx, time.Second/time.Duration(b.opts.FrameRate))
	}
	return h, nil
}

// SceneHandle is one mounted volumetric scene. It exclusively owns its
// meshes, materials and buffers until Dispose.
type SceneHandle struct {
	id      string
	surface driven.Surface
	now     func() time.Time

	mu            sync.Mutex
	anatomy       *domain.Anatomy
	spheres       []pulsingSphere
	points        *domain.PointCloud
	lights        []domain.Light
	camera        domain.Camera
	width, height int
	brainRotation float64
	seq           uint64
	start         time.Time

	resources        *resourceTracker
	unregisterResize func()
	cancel           context.CancelFunc
	done             chan struct{}
	disposeOnce      sync.Once
	disposed         atomic.Bool
}

// ID returns the owner ID the handle mounted with.
func (h *SceneHandle) ID() string {
	return h.id
}

// Disposed returns true once Dispose has run.
func (h *SceneHandle) Disposed() bool {
	return h.disposed.Load()
}

// Resources reports resource accounting for the handle.
func (h *SceneHandle) Resources() ResourceStats {
	return h.resources.stats()
}

func (h *SceneHandle) loop(ctx context.Context, interval time.Duration) {
	defer close(h.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Step()
		}
	}
}

// Step advances one frame and presents it. It is a no-op after Dispose.
func (h *SceneHandle) Step() {
	frame, ok := h.advance()
	if !ok {
		return
	}
	h.surface.Present(frame)
}

// advance moves the animation forward by one frame.
func (h *SceneHandle) advance() (domain.Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.disposed.Load() {
		return domain.Frame{}, false
	}

	elapsed := h.now().Sub(h.start)
	if h.seq > 0 {
		h.brainRotation += brainSpinPerFrame
	}
	h.seq++

	spheres := make([]domain.ActivationSphere, len(h.spheres))
	for i := range h.spheres {
		spheres[i] = h.spheres[i].at(elapsed)
	}

	return domain.Frame{
		Seq:            h.seq,
		Elapsed:        elapsed,
		Width:          h.width,
		Height:         h.height,
		Camera:         h.camera,
		Lights:         h.lights,
		Anatomy:        h.anatomy,
		BrainRotationY: h.brainRotation,
		GroupRotationY: groupRotation(elapsed),
		Spheres:        spheres,
		Points:         h.points,
	}, true
}

// resize recomputes the projection aspect and draw-buffer size.
func (h *SceneHandle) resize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed.Load() {
		return
	}
	h.width, h.height = width, height
	h.camera.Aspect = aspect(width, height)
}

// Dispose stops the render loop, removes the resize listener, detaches the
// scene content and releases every resource exactly once. Safe to call any
// number of times. It must not be called from inside Surface.Present.
func (h *SceneHandle) Dispose() {
	h.disposeOnce.Do(func() {
		h.cancel()
		<-h.done

		h.mu.Lock()
		h.disposed.Store(true)
		h.anatomy = nil
		h.spheres = nil
		h.points = nil
		h.mu.Unlock()

		if h.unregisterResize != nil {
			h.unregisterResize()
		}
		released := h.resources.releaseAll()
		h.surface.Unmount(h.id)

		sceneLog.Debug("disposed %s: released %d resources", h.id, released)
	})
}

// resourceKind classifies tracked scene resources.
type resourceKind string

const (
	resourceGeometry resourceKind = "geometry"
	resourceMaterial resourceKind = "material"
	resourceBuffer   resourceKind = "buffer"
)

// ResourceStats counts resources created and released by a scene.
type ResourceStats struct {
	Created  int
	Released int
	ByKind   map[string]int
}

// Live returns the number of unreleased resources.
func (s ResourceStats) Live() int {
	return s.Created - s.Released
}

type trackedResource struct {
	kind     resourceKind
	name     string
	released bool
}

// resourceTracker records every allocation so disposal can release each
// one exactly once.
type resourceTracker struct {
	mu        sync.Mutex
	resources []*trackedResource
	released  int
}

func newResourceTracker() *resourceTracker {
	return &resourceTracker{}
}

func (t *resourceTracker) track(kind resourceKind, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resources = append(t.resources, &trackedResource{kind: kind, name: name})
}

// releaseAll releases unreleased resources and returns how many it released.
func (t *resourceTracker) releaseAll() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, r := range t.resources {
		if r.released {
			continue
		}
		r.released = true
		n++
	}
	t.released += n
	return n
}

func (t *resourceTracker) live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.resources) - t.released
}

func (t *resourceTracker) stats() ResourceStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := ResourceStats{
		Created:  len(t.resources),
		Released: t.released,
		ByKind:   make(map[string]int),
	}
	for _, r := range t.resources {
		s.ByKind[string(r.kind)]++
	}
	return s
}
