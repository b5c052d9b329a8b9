package canvas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

func TestCanvas_Draw(t *testing.T) {
	c := NewCanvas(5, 3)
	red := domain.RGB{R: 1}

	c.Draw([]domain.ProjectedPoint{
		{X: 0.5, Y: 0.5, Opacity: 1, Layer: domain.LayerAnatomy, Color: red},
		{X: 2.2, Y: 1.7, Opacity: 1, Layer: domain.LayerActivation, Color: red},
		{X: 4.1, Y: 2.1, Opacity: 0.01, Layer: domain.LayerActivation, Color: red},
		{X: 9, Y: 9, Opacity: 1, Layer: domain.LayerActivation, Color: red},
	})

	assert.Equal(t, 2, c.Filled())
	assert.Equal(t, ".    \n  @  \n     ", c.Render(false))
}

func TestCanvas_GlowSpreads(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Draw([]domain.ProjectedPoint{
		{X: 1, Y: 1, Opacity: 0.3, Layer: domain.LayerGlow},
		{X: 1, Y: 1, Opacity: 0.9, Layer: domain.LayerActivation},
	})

	assert.Equal(t, " · \n·@·\n · ", c.Render(false))
}

func TestCanvas_RenderColor(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Draw([]domain.ProjectedPoint{
		{X: 0, Y: 0, Opacity: 1, Layer: domain.LayerActivation, Color: domain.RGB{R: 1}},
		{X: 1, Y: 0, Opacity: 1, Layer: domain.LayerActivation, Color: domain.RGB{R: 1}},
	})

	out := c.Render(true)
	assert.Contains(t, out, "@@")
	assert.True(t, strings.HasSuffix(out, "  "))
}

func TestCanvas_DrawFrame(t *testing.T) {
	c := NewCanvas(40, 20)
	frame := domain.Frame{
		Camera: domain.Camera{FOV: 75, Near: 0.1, Far: 1000, Aspect: 1, Position: domain.Vec3{Z: 5}},
		Spheres: []domain.ActivationSphere{
			{Position: domain.Vec3{}, Opacity: 0.9, Radius: 0.08, Scale: 1, GlowOpacity: 0.3, GlowRadius: 0.12, GlowScale: 1.5},
		},
	}

	c.DrawFrame(frame)
	assert.Equal(t, 5, c.Filled(), "one sphere plus its glow")

	c.Clear()
	assert.Zero(t, c.Filled())
}

func TestNewCanvas_NegativeSize(t *testing.T) {
	c := NewCanvas(-1, -1)
	w, h := c.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
	assert.Empty(t, c.Render(false))
}
