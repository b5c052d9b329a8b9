package driven

import "github.com/custodia-labs/brainview-cli/internal/core/domain"

// Surface is the host drawing target for a volumetric scene. It is provided
// by the surrounding shell (a terminal UI, a headless recorder, ...).
type Surface interface {
	// Size returns the drawable width and height.
	Size() (width, height int)

	// OnResize registers a listener for size changes. The returned func
	// unregisters it and is safe to call more than once.
	OnResize(fn func(width, height int)) (unregister func())

	// Mount claims the surface for one scene owner.
	// Returns domain.ErrSurfaceBusy if another owner holds it.
	Mount(owner string) error

	// Unmount releases the claim. Unknown owners are ignored.
	Unmount(owner string)

	// Present hands a finished frame to the host. It must not block.
	Present(frame domain.Frame)
}
