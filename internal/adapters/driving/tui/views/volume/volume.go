// Package volume provides the animated volumetric view for the TUI.
package volume

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/surface"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/canvas"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/views/slices"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// chromeLines is the height taken by the tabs and legend.
const chromeLines = 4

// View draws the frames a mounted scene presents to the surface.
type View struct {
	styles     *styles.Styles
	visualizer driving.Visualizer
	surface    *surface.Headless
	canvas     *canvas.Canvas
	color      bool
	width      int
	height     int
}

// NewView creates a volume view. surface may be nil.
func NewView(s *styles.Styles, visualizer driving.Visualizer, surf *surface.Headless) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		visualizer: visualizer,
		surface:    surf,
		canvas:     canvas.NewCanvas(0, 0),
		color:      true,
	}
}

// SetColor enables or disables ANSI colour in the projection.
func (v *View) SetColor(color bool) {
	v.color = color
}

// SetDimensions sizes the canvas and resizes the surface, which the
// mounted scene listens to.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	h := height - chromeLines
	if h < 1 {
		h = 1
	}
	v.canvas = canvas.NewCanvas(width, h)
	if v.surface != nil {
		v.surface.Resize(width, h)
	}
	v.redraw()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update redraws on new frames.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg.(type) {
	case messages.FrameReady, messages.StateChanged:
		v.redraw()
	}
	return v, nil
}

func (v *View) redraw() {
	if v.surface == nil {
		return
	}
	frame, ok := v.surface.Last()
	if !ok || !v.visualizer.SceneMounted() {
		v.canvas.Clear()
		return
	}
	v.canvas.DrawFrame(frame)
}

// View renders the volume view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(slices.RenderTabs(v.styles, v.visualizer.Modes(), v.visualizer.State().Mode))
	b.WriteString("\n")

	resolved := v.visualizer.View()
	if resolved.Empty() {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("No voxel data available"))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render(domain.EmptySliceHint))
		return b.String()
	}

	b.WriteString(v.legend(resolved.Voxels))
	b.WriteString("\n")
	if !v.visualizer.SceneMounted() {
		b.WriteString(v.styles.Muted.Render("No display surface; the scene is not running"))
		return b.String()
	}
	b.WriteString(v.canvas.Render(v.color))
	return b.String()
}

func (v *View) legend(voxels *domain.VoxelData) string {
	significant := 0
	for _, s := range voxels.Samples {
		if s.IsSignificant() {
			significant++
		}
	}
	return v.styles.Muted.Render(fmt.Sprintf("%d samples: %d pulsing (@), %d ambient (+ *)",
		voxels.Len(), significant, voxels.Len()-significant))
}
