package domain

import "errors"

// Domain errors represent engine-level failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnrecognizedDataset indicates a dataset with no recognisable shape:
	// it carries neither slice sets nor voxel data.
	ErrUnrecognizedDataset = errors.New("unrecognised dataset shape")

	// ErrUnknownViewMode indicates a view mode name that cannot be parsed.
	ErrUnknownViewMode = errors.New("unknown view mode")

	// ErrNotSliceMode indicates a slice operation while the volumetric mode is active.
	ErrNotSliceMode = errors.New("slice navigation requires a 2D view mode")

	// ErrNoVoxelData indicates an operation that needs voxel samples on a
	// dataset without any.
	ErrNoVoxelData = errors.New("no voxel data")

	// Scene Errors.

	// ErrSurfaceBusy indicates another scene is already mounted on the host surface.
	ErrSurfaceBusy = errors.New("surface already has a mounted scene")

	// ErrNoSurface indicates the volumetric mode was entered without a host surface.
	ErrNoSurface = errors.New("no host surface available")

	// Region Errors.

	// ErrEmptyRegionKey indicates a region selection without a key.
	ErrEmptyRegionKey = errors.New("region key is empty")

	// ErrUnknownRegion indicates the region lookup has no entry for a key.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrLookupFailed indicates the region metadata service returned an error status.
	ErrLookupFailed = errors.New("region lookup failed")

	// ErrRateLimited indicates the region metadata service rejected the request rate.
	ErrRateLimited = errors.New("rate limited")
)
