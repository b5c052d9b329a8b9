package surface

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Surface = (*Headless)(nil)

// Headless is an off-screen surface that keeps the latest presented frame.
// It backs one-shot rendering and anything else without a live display.
type Headless struct {
	mu        sync.Mutex
	width     int
	height    int
	owner     string
	listeners map[int]func(width, height int)
	nextID    int
	last      *domain.Frame
	presented int
	notify    chan struct{}
}

// NewHeadless creates a surface of the given size.
func NewHeadless(width, height int) *Headless {
	return &Headless{
		width:     width,
		height:    height,
		listeners: make(map[int]func(int, int)),
		notify:    make(chan struct{}, 1),
	}
}

// Size returns the drawable size.
func (h *Headless) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// OnResize registers a resize listener.
func (h *Headless) OnResize(fn func(width, height int)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.listeners, id)
		})
	}
}

// Resize changes the size and notifies listeners outside the lock.
func (h *Headless) Resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	fns := make([]func(int, int), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(width, height)
	}
}

// Mount claims the surface for owner.
func (h *Headless) Mount(owner string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.owner != "" && h.owner != owner {
		return fmt.Errorf("%w: held by %s", domain.ErrSurfaceBusy, h.owner)
	}
	h.owner = owner
	return nil
}

// Unmount releases the claim held by owner and drops its last frame.
func (h *Headless) Unmount(owner string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.owner != owner {
		return
	}
	h.owner = ""
	h.last = nil
}

// Present stores frame as the latest. Frames from a stale owner are
// accepted; the scene stops presenting before it unmounts.
func (h *Headless) Present(frame domain.Frame) {
	h.mu.Lock()
	f := frame
	h.last = &f
	h.presented++
	h.mu.Unlock()

	select {
	case h.notify <- struct{}{}:
	default:
	}
}

// Owner returns the current mount owner, or "".
func (h *Headless) Owner() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.owner
}

// Last returns the latest frame, if any.
func (h *Headless) Last() (domain.Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return domain.Frame{}, false
	}
	return *h.last, true
}

// Presented returns the number of frames presented so far.
func (h *Headless) Presented() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presented
}

// Updates signals after frames are presented. Bursts coalesce.
func (h *Headless) Updates() <-chan struct{} {
	return h.notify
}
