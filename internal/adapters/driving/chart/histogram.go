package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// DefaultBins is the histogram bin count when none is given.
const DefaultBins = 20

// HistogramOptions configures RenderHistogram.
type HistogramOptions struct {
	// Title overrides the plot title. Empty uses the analysis name.
	Title string

	// Bins is the number of equal-width bins over [0, 1].
	Bins int

	// Width and Height are the image size. Zero means 8x4 inches.
	Width, Height vg.Length
}

// RenderHistogram writes a PNG histogram of the voxel activation values with
// a marker at the significance threshold.
func RenderHistogram(w io.Writer, result *domain.AnalysisResult, o HistogramOptions) error {
	if result == nil || result.Brain.Voxels.Len() == 0 {
		return domain.ErrNoVoxelData
	}
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	if o.Width == 0 {
		o.Width = 8 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 4 * vg.Inch
	}
	if o.Title == "" {
		o.Title = result.Name
		if o.Title == "" {
			o.Title = result.ID
		}
	}

	samples := result.Brain.Voxels.Samples
	values := make(plotter.Values, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}

	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "activation"
	p.Y.Label.Text = "voxels"
	p.X.Min, p.X.Max = 0, 1

	hist, err := plotter.NewHist(values, o.Bins)
	if err != nil {
		return fmt.Errorf("building histogram: %w", err)
	}
	hist.FillColor = color.RGBA{R: 0x4F, G: 0x7C, B: 0xFF, A: 0xFF}
	p.Add(hist)

	var peak float64
	for _, b := range hist.Bins {
		peak = max(peak, b.Weight)
	}
	marker, err := plotter.NewLine(plotter.XYs{
		{X: domain.SignificanceThreshold, Y: 0},
		{X: domain.SignificanceThreshold, Y: peak},
	})
	if err != nil {
		return fmt.Errorf("building threshold marker: %w", err)
	}
	marker.Color = color.RGBA{R: 0xFF, G: 0x5A, B: 0x4F, A: 0xFF}
	marker.Width = vg.Points(1.5)
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(marker)
	p.Legend.Add(fmt.Sprintf("significant > %.1f", domain.SignificanceThreshold), marker)
	p.Legend.Top = true

	wt, err := p.WriterTo(o.Width, o.Height, "png")
	if err != nil {
		return fmt.Errorf("creating png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}
