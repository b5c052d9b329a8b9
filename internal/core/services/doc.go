// Package services implements the driving port interfaces.
// Services contain the engine logic and orchestrate calls to driven
// ports (adapters).
//
//   - Resolve / RenderSlice: pure view-model resolution and slice layering
//   - SceneBuilder / SceneHandle: the volumetric scene and its render loop
//   - VisualizationService: the view-mode and slice state machine
//   - RegionCoordinator: token-guarded region metadata fetches
//   - AnalysisService, RegionService, SettingsService: library and config
package services
