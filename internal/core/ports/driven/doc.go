// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RegionLookup: Region metadata (embedded catalog or remote service)
//   - DatasetCodec: Analysis wire format decoding
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Surface: Host drawing target. Without it the volumetric mode resolves
//     but mounts no scene.
//   - AnalysisStore: Analysis library. Without it only files can be viewed.
//   - DatasetWatcher: Live reload of dataset files.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
