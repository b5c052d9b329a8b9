// Package chart renders voxel activation as standalone HTML charts and
// PNG histograms.
package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// DefaultMaxPoints caps the samples written to one chart.
const DefaultMaxPoints = 20000

// Options configures a chart.
type Options struct {
	// Title overrides the chart title. Empty uses the analysis name.
	Title string

	// MaxPoints downsamples by stride above this count. Zero means
	// DefaultMaxPoints.
	MaxPoints int

	// AssetsHost overrides where the echarts scripts are loaded from.
	AssetsHost string
}

// axes maps a plane to the sample coordinates drawn on its x and y axes.
var axes = map[domain.ViewMode][2]string{
	domain.ViewAxial:    {"X", "Y"},
	domain.ViewSagittal: {"Y", "Z"},
	domain.ViewCoronal:  {"X", "Z"},
}

// Planes returns the modes Render accepts.
func Planes() []domain.ViewMode {
	return []domain.ViewMode{domain.ViewAxial, domain.ViewSagittal, domain.ViewCoronal, domain.ViewVolumetric}
}

// Render writes an HTML scatter of the analysis voxels. Canonical planes
// project the samples onto two axes; the volumetric mode draws them in 3D.
// Point colour follows the activation value.
func Render(w io.Writer, result *domain.AnalysisResult, plane domain.ViewMode, o Options) error {
	if result == nil || result.Brain.Voxels.Len() == 0 {
		return domain.ErrNoVoxelData
	}
	if o.MaxPoints <= 0 {
		o.MaxPoints = DefaultMaxPoints
	}
	if o.Title == "" {
		o.Title = result.Name
		if o.Title == "" {
			o.Title = result.ID
		}
	}

	samples := result.Brain.Voxels.Samples
	stride := 1
	if len(samples) > o.MaxPoints {
		stride = int(math.Ceil(float64(len(samples)) / float64(o.MaxPoints)))
	}
	subtitle := fmt.Sprintf("%s  points=%d stride=%d", plane.Label(), (len(samples)+stride-1)/stride, stride)

	if plane == domain.ViewVolumetric {
		return render3D(w, samples, stride, o, subtitle)
	}
	names, ok := axes[plane]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownViewMode, plane)
	}

	data := make([]opts.ScatterData, 0, len(samples)/stride+1)
	for i := 0; i < len(samples); i += stride {
		x, y := project(samples[i], plane)
		data = append(data, opts.ScatterData{Value: []interface{}{x, y, samples[i].Value}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: o.Title, Theme: "dark", Width: "900px", Height: "900px", AssetsHost: o.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 100, Name: names[0], NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100, Name: names[1], NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(visualMap("2")),
	)
	scatter.AddSeries("activation", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func render3D(w io.Writer, samples []domain.VoxelSample, stride int, o Options, subtitle string) error {
	data := make([]opts.Chart3DData, 0, len(samples)/stride+1)
	for i := 0; i < len(samples); i += stride {
		s := samples[i]
		data = append(data, opts.Chart3DData{Value: []interface{}{s.X, s.Y, s.Z, s.Value}})
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: o.Title, Theme: "dark", Width: "900px", Height: "900px", AssetsHost: o.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: subtitle}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X", Min: 0, Max: 100}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y", Min: 0, Max: 100}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z", Min: 0, Max: 100}),
		charts.WithVisualMapOpts(visualMap("3")),
	)
	scatter.AddSeries("activation", data)

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// project returns the two coordinates of s shown on plane.
func project(s domain.VoxelSample, plane domain.ViewMode) (float64, float64) {
	switch plane {
	case domain.ViewSagittal:
		return s.Y, s.Z
	case domain.ViewCoronal:
		return s.X, s.Z
	default:
		return s.X, s.Y
	}
}

// visualMap colours points by the activation value in the given data
// dimension, using the same hue ramp as the volumetric scene.
func visualMap(dimension string) opts.VisualMap {
	ramp := make([]string, 0, 5)
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		ramp = append(ramp, domain.ActivationColor(v).Hex())
	}
	return opts.VisualMap{
		Show:       opts.Bool(true),
		Calculable: opts.Bool(true),
		Min:        0,
		Max:        1,
		Dimension:  dimension,
		InRange:    &opts.VisualMapInRange{Color: ramp},
	}
}
