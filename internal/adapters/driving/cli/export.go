package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/chart"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// Export formats.
const (
	formatHTML = "html"
	formatPNG  = "png"
)

var (
	exportFormat    string
	exportPlane     string
	exportOut       string
	exportMaxPoints int
	exportTitle     string
)

var exportCmd = &cobra.Command{
	Use:   "export [analysis-id | file]",
	Short: "Export the voxel activation as a chart",
	Long: `Write a standalone HTML scatter chart of the voxel activation.

The canonical planes project every sample onto two axes; the volumetric
plane draws a rotatable 3D scatter. Large datasets are downsampled to
--max-points.

With --format png a histogram of the activation values is written instead,
marking the significance threshold. --plane is ignored for histograms.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", formatHTML, "html (scatter) or png (histogram)")
	exportCmd.Flags().StringVarP(&exportPlane, "plane", "p", string(domain.ViewAxial), "axial, sagittal, coronal or volumetric")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	exportCmd.Flags().IntVar(&exportMaxPoints, "max-points", chart.DefaultMaxPoints, "maximum points to plot")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "chart title (default: analysis name)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != formatHTML && exportFormat != formatPNG {
		return fmt.Errorf("unknown format %q (want %s or %s)", exportFormat, formatHTML, formatPNG)
	}
	plane, err := domain.ParseViewMode(exportPlane)
	if err != nil {
		return err
	}
	result, err := loadAnalysis(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" && exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	if exportFormat == formatPNG {
		if err := chart.RenderHistogram(w, result, chart.HistogramOptions{Title: exportTitle}); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if exportOut != "" && exportOut != "-" {
			cmd.PrintErrf("Wrote activation histogram to %s\n", exportOut)
		}
		return nil
	}

	o := chart.Options{Title: exportTitle, MaxPoints: exportMaxPoints}
	if err := chart.Render(w, result, plane, o); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if exportOut != "" && exportOut != "-" {
		cmd.PrintErrf("Wrote %s chart to %s\n", plane.Label(), exportOut)
	}
	return nil
}
