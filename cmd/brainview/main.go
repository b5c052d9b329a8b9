// Command brainview explores brain activation maps of music analyses.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/dataset"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/regions"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/surface"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
	"github.com/custodia-labs/brainview-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore(os.Getenv("BRAINVIEW_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening analysis library: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing analysis library: %v", err)
		}
	}()

	lookup, err := regionLookup(settings.Regions)
	if err != nil {
		return err
	}

	codec := dataset.NewCodec()
	analysisService := services.NewAnalysisService(store.AnalysisStore(), codec)
	regionService := services.NewRegionService(lookup)

	// The viewer sizes the surface to the terminal once it knows it.
	host := surface.NewHeadless(80, 24)
	builder := services.NewSceneBuilder(services.SceneOptions{
		FrameRate: settings.Display.FrameRate,
		Seed:      settings.Display.Seed,
	})
	visualizer := services.NewVisualizationService(builder, host)
	defer visualizer.Close() //nolint:errcheck

	cli.SetVersion(version)
	cli.SetSettingsService(settingsService)
	cli.SetAnalysisService(analysisService)
	cli.SetRegionDirectory(regionService)
	cli.SetViewResolver(services.NewViewService())
	cli.SetViewConfig(&cli.ViewConfig{
		Visualizer: visualizer,
		Regions:    services.NewRegionCoordinator(lookup),
		Surface:    host,
		Watcher:    dataset.NewWatcher(codec),
		Scenes:     builder,
		Color:      settings.Display.Color,
		Seed:       settings.Display.Seed,
	})

	return cli.Execute(ctx)
}

// regionLookup picks the region metadata source from settings.
func regionLookup(cfg domain.RegionSettings) (driven.RegionLookup, error) {
	if cfg.Source == domain.RegionSourceHTTP {
		if !cfg.IsConfigured() {
			return nil, fmt.Errorf("region source %q requires regions.base_url", cfg.Source)
		}
		client, err := regions.NewClient(cfg.BaseURL, regions.WithRateLimit(cfg.RateLimit))
		if err != nil {
			return nil, fmt.Errorf("creating region client: %w", err)
		}
		logger.Debug("Region info from %s", cfg.BaseURL)
		return client, nil
	}

	catalog, err := regions.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading region catalog: %w", err)
	}
	return catalog, nil
}
