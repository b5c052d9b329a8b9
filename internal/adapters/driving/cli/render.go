package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/surface"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/canvas"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

var (
	renderMode    string
	renderSlice   int
	renderFrames  int
	renderWidth   int
	renderHeight  int
	renderNoColor bool
)

var renderCmd = &cobra.Command{
	Use:   "render [analysis-id | file]",
	Short: "Print one view of an analysis and exit",
	Long: `Render a single view without starting the interactive viewer.

For the volumetric mode the scene is advanced --frames times and the last
frame is drawn to the terminal. For a 2D plane the layers of one slice are
described.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderMode, "mode", "m", string(domain.ViewVolumetric), "view mode")
	renderCmd.Flags().IntVarP(&renderSlice, "slice", "s", -1, "slice index for 2D modes (default: centre)")
	renderCmd.Flags().IntVar(&renderFrames, "frames", 1, "frames to advance before drawing")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "canvas width (default: terminal width)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "canvas height (default: terminal height)")
	renderCmd.Flags().BoolVar(&renderNoColor, "no-color", false, "disable ANSI colour")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	mode, err := domain.ParseViewMode(renderMode)
	if err != nil {
		return err
	}
	result, err := loadAnalysis(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	if mode.IsPlanar() {
		return renderSliceFrame(cmd, result, mode)
	}
	return renderVolume(cmd, result)
}

func renderSliceFrame(cmd *cobra.Command, result *domain.AnalysisResult, mode domain.ViewMode) error {
	resolver := viewResolver
	if resolver == nil {
		resolver = services.NewViewService()
	}
	index := renderSlice
	if index < 0 {
		index = resolver.Resolve(result, mode).SliceIndex
	}
	frame, err := resolver.Slice(result, mode, index)
	if err != nil {
		return err
	}

	cmd.Printf("%s  slice %d/%d\n", mode.Label(), frame.Index, frame.Count)
	if frame.Empty {
		cmd.Println(frame.Message)
		cmd.Println(frame.Hint)
		return nil
	}
	cmd.Printf("  base:    %s\n", describeLayer(frame.Base))
	if frame.Overlay != nil {
		cmd.Printf("  overlay: %s (%s, %.0f%%)\n", describeLayer(frame.Overlay), frame.Overlay.Blend, frame.Overlay.Opacity*100)
	}
	if len(frame.Regions) > 0 {
		names := make([]string, len(frame.Regions))
		for i, r := range frame.Regions {
			names[i] = string(r)
		}
		cmd.Printf("  regions: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func describeLayer(layer *domain.Layer) string {
	ref := string(layer.Image)
	if strings.HasPrefix(ref, "data:") {
		if i := strings.IndexByte(ref, ';'); i > 0 {
			return fmt.Sprintf("inline %s, %d bytes", ref[len("data:"):i], len(ref))
		}
	}
	return ref
}

func renderVolume(cmd *cobra.Command, result *domain.AnalysisResult) error {
	if result.Brain.Voxels.Len() == 0 {
		return domain.ErrNoVoxelData
	}

	width, height := renderSize()
	headless := surface.NewHeadless(width, height)
	var seed int64
	if viewConfig != nil {
		seed = viewConfig.Seed
	}
	vis := services.NewVisualizationService(
		services.NewSceneBuilder(services.SceneOptions{Manual: true, Seed: seed}),
		headless,
	)
	defer vis.Close() //nolint:errcheck

	if err := vis.Load(result); err != nil {
		return fmt.Errorf("loading analysis: %w", err)
	}
	if err := vis.SetMode(domain.ViewVolumetric); err != nil {
		return fmt.Errorf("mounting scene: %w", err)
	}
	scene := vis.Scene()
	if scene == nil {
		return errors.New("scene did not mount")
	}
	for i := 1; i < renderFrames; i++ {
		scene.Step()
	}

	frame, ok := headless.Last()
	if !ok {
		return errors.New("no frame presented")
	}
	c := canvas.NewCanvas(width, height)
	c.DrawFrame(frame)
	color := !renderNoColor && (viewConfig == nil || viewConfig.Color)
	cmd.Print(c.Render(color))
	cmd.Println()
	return nil
}

// renderSize picks the canvas size from flags, then the terminal, then 80x24.
func renderSize() (int, int) {
	width, height := renderWidth, renderHeight
	if width <= 0 || height <= 0 {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || w <= 0 || h <= 0 {
			w, h = 80, 24
		}
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h - 1
		}
	}
	return width, height
}
