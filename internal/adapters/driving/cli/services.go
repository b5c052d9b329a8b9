package cli

import (
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/surface"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

// Services used by the commands. Set by main before Execute.
var (
	analysisService driving.AnalysisService
	regionDirectory driving.RegionDirectory
	viewResolver    driving.ViewResolver
	settingsService driving.SettingsService
	viewConfig      *ViewConfig
)

// ViewConfig holds what the interactive viewer needs beyond the services.
type ViewConfig struct {
	Visualizer driving.Visualizer
	Regions    driving.RegionSelector
	Surface    *surface.Headless
	Watcher    driven.DatasetWatcher
	Color      bool

	// Scenes builds the scenes streamed by 'serve'.
	Scenes *services.SceneBuilder

	// Seed fixes the decorative scene randomness for 'render'.
	Seed int64
}

// SetAnalysisService sets the analysis library used by the commands.
func SetAnalysisService(s driving.AnalysisService) {
	analysisService = s
}

// SetRegionDirectory sets the region metadata directory.
func SetRegionDirectory(d driving.RegionDirectory) {
	regionDirectory = d
}

// SetViewResolver sets the stateless view resolver.
func SetViewResolver(r driving.ViewResolver) {
	viewResolver = r
}

// SetSettingsService sets the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetViewConfig sets the configuration for the interactive viewer.
func SetViewConfig(c *ViewConfig) {
	viewConfig = c
}
