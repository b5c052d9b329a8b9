package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

// minOpacity hides points too faint to read as a glyph.
const minOpacity = 0.05

type cell struct {
	glyph rune
	color domain.RGB
	set   bool
}

// Canvas rasterises volumetric frames into a grid of terminal cells.
// It is shared by the volume view and the render command.
type Canvas struct {
	width  int
	height int
	cells  []cell
}

// NewCanvas creates an empty canvas.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{width: width, height: height, cells: make([]cell, width*height)}
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{}
	}
}

// DrawFrame projects frame onto the canvas, replacing its contents.
func (c *Canvas) DrawFrame(frame domain.Frame) {
	c.Clear()
	c.Draw(services.NewProjector(c.width, c.height, CellAspect).Project(frame))
}

// Draw plots points in order, so later points cover earlier ones.
func (c *Canvas) Draw(points []domain.ProjectedPoint) {
	for _, p := range points {
		if p.Opacity < minOpacity {
			continue
		}
		x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
		g := glyph(p)
		c.set(x, y, g, p.Color)
		if p.Layer == domain.LayerGlow {
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				if !c.at(x+d[0], y+d[1]).set {
					c.set(x+d[0], y+d[1], '·', p.Color)
				}
			}
		}
	}
}

func (c *Canvas) set(x, y int, g rune, color domain.RGB) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell{glyph: g, color: color, set: true}
}

func (c *Canvas) at(x, y int) cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return cell{}
	}
	return c.cells[y*c.width+x]
}

// Filled returns the number of drawn cells.
func (c *Canvas) Filled() int {
	n := 0
	for _, cl := range c.cells {
		if cl.set {
			n++
		}
	}
	return n
}

func glyph(p domain.ProjectedPoint) rune {
	switch p.Layer {
	case domain.LayerAnatomy:
		return '.'
	case domain.LayerAmbient:
		if p.Size >= 0.25 {
			return '*'
		}
		return '+'
	case domain.LayerGlow:
		return 'o'
	default:
		return '@'
	}
}

// Render returns the canvas as lines of text. With color set, runs of
// same-coloured cells are wrapped in ANSI styles.
func (c *Canvas) Render(color bool) string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.width : (y+1)*c.width]
		if !color {
			for _, cl := range row {
				b.WriteRune(plainGlyph(cl))
			}
			continue
		}
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && sameRun(row[start], row[end]) {
				end++
			}
			var run strings.Builder
			for _, cl := range row[start:end] {
				run.WriteRune(plainGlyph(cl))
			}
			if row[start].set {
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(row[start].color.Hex())).
					Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = end
		}
	}
	return b.String()
}

func plainGlyph(cl cell) rune {
	if !cl.set {
		return ' '
	}
	return cl.glyph
}

func sameRun(a, b cell) bool {
	if a.set != b.set {
		return false
	}
	return !a.set || a.color.Hex() == b.color.Hex()
}
