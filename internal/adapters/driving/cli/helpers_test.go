package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/dataset"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/regions"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/chart"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

const testPayload = `{
  "name": "Clair de Lune",
  "emotions": {"sad": 0.6, "calm": 0.3, "happy": 0.1},
  "brain_views": {
    "axial": {
      "orientation": "axial",
      "slices": [
        {"index": 0, "position": 30, "image": "data:image/png;base64,AAA"},
        {"index": 1, "position": 50, "image": "data:image/png;base64,BBB", "overlay": "data:image/png;base64,CCC", "regions": ["amygdala", "insula"]},
        {"index": 2, "position": 70, "image": "data:image/png;base64,DDD"}
      ]
    }
  },
  "voxel_data": {
    "dimensions": [100, 100, 100],
    "voxels": [
      {"x": 73, "y": 45, "z": 35, "value": 0.8},
      {"x": 50, "y": 50, "z": 50, "value": 0.2},
      {"x": 20, "y": 60, "z": 40, "value": 0.65}
    ]
  }
}`

type testEnv struct {
	store    *memory.AnalysisStore
	settings *services.SettingsService
	vis      *services.VisualizationService
}

// setupTestServices wires in-memory services and returns a cleanup func
// that restores the package state, flag values included.
func setupTestServices(t *testing.T) (*testEnv, func()) {
	t.Helper()

	store := memory.NewAnalysisStore()
	require.NoError(t, store.Save(context.Background(), &domain.AnalysisResult{
		ID:        "a1",
		Name:      "Gymnopedie",
		CreatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		Emotions:  map[domain.EmotionLabel]float64{domain.EmotionCalm: 0.7, domain.EmotionSad: 0.2},
		Brain: domain.BrainData{
			Shape: domain.ShapeFlat,
			Flat: domain.SliceSet{Slices: []domain.Slice{
				{Index: 0, Image: "flat0.png"},
				{Index: 1, Image: "flat1.png", Overlay: "over1.png", Regions: []domain.RegionKey{"hippocampus"}},
			}},
		},
	}))

	catalog, err := regions.NewCatalog()
	require.NoError(t, err)

	env := &testEnv{
		store:    store,
		settings: services.NewSettingsService(memory.NewConfigStore()),
		vis:      services.NewVisualizationService(nil, nil),
	}
	SetAnalysisService(services.NewAnalysisService(store, dataset.NewCodec()))
	SetRegionDirectory(services.NewRegionService(catalog))
	SetViewResolver(services.NewViewService())
	SetSettingsService(env.settings)
	SetViewConfig(&ViewConfig{
		Visualizer: env.vis,
		Regions:    services.NewRegionCoordinator(catalog),
		Watcher:    dataset.NewWatcher(nil),
		Seed:       7,
	})

	return env, resetCLI
}

func resetCLI() {
	analysisService = nil
	regionDirectory = nil
	viewResolver = nil
	settingsService = nil
	viewConfig = nil

	analysisJSON = false
	importName = ""
	regionsJSON = false
	viewMode = ""
	viewWatch = false
	renderMode = string(domain.ViewVolumetric)
	renderSlice = -1
	renderFrames = 1
	renderWidth = 0
	renderHeight = 0
	renderNoColor = false
	exportFormat = formatHTML
	exportPlane = string(domain.ViewAxial)
	exportOut = ""
	exportMaxPoints = chart.DefaultMaxPoints
	exportTitle = ""

	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeDataset(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(testPayload), 0o600))
	return path
}
