// Package domain defines the core entities of the brainview engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AnalysisResult: a decoded brain activation dataset
//   - SliceSet / Slice: navigable 2D cross sections with optional overlays
//   - VoxelSample: one activation sample in source coordinate space
//   - ViewState: the engine-owned view mode and slice position
//   - RegionInfo / RegionPanel: anatomical region metadata and its fetch state
//   - Frame: a snapshot of the volumetric scene handed to a host surface
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
