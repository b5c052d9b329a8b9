package services

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// Projector maps a volumetric frame onto a width x height raster using the
// frame's perspective camera.
type Projector struct {
	width  int
	height int
	// cellAspect is the height/width ratio of one raster cell; terminal
	// cells are about twice as tall as they are wide.
	cellAspect float64
}

// NewProjector creates a projector for a raster of the given size.
func NewProjector(width, height int, cellAspect float64) *Projector {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	return &Projector{width: width, height: height, cellAspect: cellAspect}
}

// perspective builds the camera's view-projection matrix.
func perspective(cam domain.Camera, aspectRatio float64) *mat.Dense {
	f := 1 / math.Tan(cam.FOV*math.Pi/360)
	nf := 1 / (cam.Near - cam.Far)
	proj := mat.NewDense(4, 4, []float64{
		f / aspectRatio, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (cam.Far + cam.Near) * nf, 2 * cam.Far * cam.Near * nf,
		0, 0, -1, 0,
	})
	view := mat.NewDense(4, 4, []float64{
		1, 0, 0, -cam.Position.X,
		0, 1, 0, -cam.Position.Y,
		0, 0, 1, -cam.Position.Z,
		0, 0, 0, 1,
	})
	var vp mat.Dense
	vp.Mul(proj, view)
	return &vp
}

// Project returns the visible points of frame sorted back to front.
func (p *Projector) Project(frame domain.Frame) []domain.ProjectedPoint {
	if p.width <= 0 || p.height <= 0 {
		return nil
	}
	vp := perspective(frame.Camera, float64(p.width)/(float64(p.height)*p.cellAspect))
	in := mat.NewVecDense(4, nil)
	out := mat.NewVecDense(4, nil)

	project := func(world r3.Vec) (x, y, depth float64, ok bool) {
		in.SetVec(0, world.X)
		in.SetVec(1, world.Y)
		in.SetVec(2, world.Z)
		in.SetVec(3, 1)
		out.MulVec(vp, in)
		w := out.AtVec(3)
		if w <= 0 {
			return 0, 0, 0, false
		}
		nx, ny, nz := out.AtVec(0)/w, out.AtVec(1)/w, out.AtVec(2)/w
		if nx < -1 || nx > 1 || ny < -1 || ny > 1 || nz < -1 || nz > 1 {
			return 0, 0, 0, false
		}
		return (nx + 1) / 2 * float64(p.width), (1 - ny) / 2 * float64(p.height), w, true
	}

	var points []domain.ProjectedPoint
	light, lightDir := directionalLight(frame.Lights)
	ambient := ambientLevel(frame.Lights)

	if frame.Anatomy != nil {
		for mi := range frame.Anatomy.Meshes {
			m := &frame.Anatomy.Meshes[mi]
			center := meshToWorld(m, domain.Vec3{}, frame.BrainRotationY)
			for _, v := range m.Vertices {
				world := meshToWorld(m, v, frame.BrainRotationY)
				x, y, depth, ok := project(world)
				if !ok {
					continue
				}
				shade := ambient + light*math.Max(0, r3.Dot(r3.Unit(r3.Sub(world, center)), lightDir))
				points = append(points, domain.ProjectedPoint{
					X: x, Y: y, Depth: depth,
					Color:   scaleColor(m.Material.Color, shade),
					Opacity: m.Material.Opacity,
					Size:    1,
					Layer:   domain.LayerAnatomy,
				})
			}
		}
	}

	up := r3.Vec{Y: 1}
	if frame.Points != nil {
		for i, pos := range frame.Points.Positions {
			world := r3.Rotate(toR3(pos), frame.GroupRotationY, up)
			x, y, depth, ok := project(world)
			if !ok {
				continue
			}
			points = append(points, domain.ProjectedPoint{
				X: x, Y: y, Depth: depth,
				Color:   frame.Points.Colors[i],
				Opacity: frame.Points.Opacity,
				Size:    frame.Points.Sizes[i] * frame.Points.PointSize,
				Layer:   domain.LayerAmbient,
			})
		}
	}

	for _, s := range frame.Spheres {
		world := r3.Rotate(toR3(s.Position), frame.GroupRotationY, up)
		x, y, depth, ok := project(world)
		if !ok {
			continue
		}
		points = append(points,
			domain.ProjectedPoint{
				X: x, Y: y, Depth: depth,
				Color:   s.Color,
				Opacity: s.GlowOpacity,
				Size:    s.GlowRadius * s.GlowScale,
				Layer:   domain.LayerGlow,
			},
			domain.ProjectedPoint{
				X: x, Y: y, Depth: depth,
				Color:   s.Color,
				Opacity: s.Opacity,
				Size:    s.Radius * s.Scale,
				Layer:   domain.LayerActivation,
			},
		)
	}

	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Layer != points[j].Layer {
			return points[i].Layer < points[j].Layer
		}
		return points[i].Depth > points[j].Depth
	})
	return points
}

func directionalLight(lights []domain.Light) (float64, r3.Vec) {
	for _, l := range lights {
		if l.Kind == domain.LightDirectional && toR3(l.Position) != (r3.Vec{}) {
			return l.Intensity, r3.Unit(toR3(l.Position))
		}
	}
	return 0, r3.Vec{Y: 1}
}

func ambientLevel(lights []domain.Light) float64 {
	for _, l := range lights {
		if l.Kind == domain.LightAmbient {
			return l.Intensity * (l.Color.R + l.Color.G + l.Color.B) / 3
		}
	}
	return 0
}

func scaleColor(c domain.RGB, k float64) domain.RGB {
	return domain.RGB{R: math.Min(1, c.R*k), G: math.Min(1, c.G*k), B: math.Min(1, c.B*k)}
}
