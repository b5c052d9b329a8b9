package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

var (
	viewMode  string
	viewWatch bool
)

// viewCmd represents the interactive viewer.
var viewCmd = &cobra.Command{
	Use:     "view [analysis-id | file]",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive brain viewer",
	Long: `Launch the interactive terminal viewer for brainview.

Pass the ID of a stored analysis or the path of an analysis file. With no
argument the viewer starts empty; press o to open the analysis library.

Controls:
  tab/shift+tab   - Cycle view mode
  ←/h, →/l        - Previous / next slice
  ↑/k, ↓/j        - Move region cursor
  enter           - Show region information
  o               - Open the analysis library
  esc             - Close panel / back
  ?               - Toggle help
  q               - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

// SetTUIConfig sets the configuration for the viewer.
func SetTUIConfig(config *ViewConfig) {
	SetViewConfig(config)
}

func init() {
	viewCmd.Flags().StringVarP(&viewMode, "mode", "m", "", "initial view mode (axial, sagittal, coronal, volumetric)")
	viewCmd.Flags().BoolVarP(&viewWatch, "watch", "w", false, "reload the file whenever it changes")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in viewer: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if viewConfig == nil || viewConfig.Visualizer == nil || viewConfig.Regions == nil {
		return errors.New("viewer not configured")
	}

	app, err := buildViewer(cmd, args)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		return fmt.Errorf("viewer error: %w", err)
	}
	return nil
}

// buildViewer prepares the app, loads the dataset, applies the initial mode
// and starts the file watch. It does not start the terminal program.
func buildViewer(cmd *cobra.Command, args []string) (*tui.App, error) {
	ctx := commandContext(cmd)

	var mode domain.ViewMode
	if viewMode != "" {
		m, err := domain.ParseViewMode(viewMode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	ports := tui.NewPorts(viewConfig.Visualizer, viewConfig.Regions)
	ports.Analysis = analysisService
	ports.Surface = viewConfig.Surface

	var events <-chan domain.DatasetEvent
	switch {
	case viewWatch:
		if len(args) == 0 || !isFile(args[0]) {
			return nil, errors.New("--watch needs an analysis file")
		}
		if viewConfig.Watcher == nil {
			return nil, errors.New("file watching not configured")
		}
		ch, err := viewConfig.Watcher.Watch(ctx, args[0])
		if err != nil {
			return nil, fmt.Errorf("watching %s: %w", args[0], err)
		}
		events = ch
	case len(args) == 1:
		result, err := loadAnalysis(ctx, args[0])
		if err != nil {
			return nil, err
		}
		if err := viewConfig.Visualizer.Load(result); err != nil {
			return nil, fmt.Errorf("loading analysis: %w", err)
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create viewer: %w", err)
	}

	// The app reloads a preloaded dataset, so the mode is applied after it.
	if mode == "" && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			mode = settings.Display.DefaultMode
		}
	}
	if mode != "" && viewConfig.Visualizer.Dataset() != nil {
		if err := viewConfig.Visualizer.SetMode(mode); err != nil {
			app.Close()
			return nil, fmt.Errorf("setting mode: %w", err)
		}
	}

	app.WithContext(ctx).WithColor(viewConfig.Color)
	if events != nil {
		app.WithWatch(events)
	}
	return app, nil
}
