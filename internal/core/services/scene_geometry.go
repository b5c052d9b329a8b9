package services

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// Anatomical mesh parameters.
const (
	cerebrumRadius   = 1.8
	cerebrumSegments = 32
	cerebrumColor    = 0xE0CDCD

	cerebellumRadius   = 0.6
	cerebellumSegments = 16
	cerebellumColor    = 0xD0BCBC

	stemRadiusTop    = 0.2
	stemRadiusBottom = 0.3
	stemHeight       = 1.2
	stemSegments     = 8
	stemColor        = 0xD6C6C6

	anatomyOpacity = 0.9

	// jitterAmplitude is the peak-to-peak per-vertex noise on the cerebrum.
	jitterAmplitude = 0.2
	// grooveHalfWidth bounds the midline fissure on the x axis.
	grooveHalfWidth = 0.2
)

// Lights and camera.
const (
	ambientColor         = 0x404040
	directionalColor     = 0xffffff
	directionalIntensity = 0.8

	cameraFOV  = 75.0
	cameraNear = 0.1
	cameraFar  = 1000.0
	cameraZ    = 5.0
)

// buildAnatomy creates the illustrative brain: a jittered cerebrum, a
// cerebellum behind and below it, and a tilted stem.
func buildAnatomy(rng *rand.Rand) *domain.Anatomy {
	cerebrum := sphereVertices(cerebrumRadius, cerebrumSegments, cerebrumSegments)
	for i, v := range cerebrum {
		cerebrum[i] = deformCerebrum(v, jitterAmplitude*(rng.Float64()-0.5))
	}

	return &domain.Anatomy{Meshes: []domain.Mesh{
		{
			Name:     "cerebrum",
			Kind:     domain.GeometrySphere,
			Vertices: toDomain(cerebrum),
			Scale:    domain.Vec3{X: 1, Y: 1, Z: 1},
			Material: anatomyMaterial(cerebrumColor),
		},
		{
			Name:     "cerebellum",
			Kind:     domain.GeometrySphere,
			Vertices: toDomain(sphereVertices(cerebellumRadius, cerebellumSegments, cerebellumSegments)),
			Position: domain.Vec3{X: 0, Y: -1.2, Z: -1.2},
			Scale:    domain.Vec3{X: 1.2, Y: 0.8, Z: 0.9},
			Material: anatomyMaterial(cerebellumColor),
		},
		{
			Name:     "stem",
			Kind:     domain.GeometryCylinder,
			Vertices: toDomain(cylinderVertices(stemRadiusTop, stemRadiusBottom, stemHeight, stemSegments)),
			Position: domain.Vec3{X: 0, Y: -2, Z: -0.8},
			Rotation: domain.Vec3{X: math.Pi / 4},
			Scale:    domain.Vec3{X: 1, Y: 1, Z: 1},
			Material: anatomyMaterial(stemColor),
		},
	}}
}

// deformCerebrum flattens the underside, elongates front to back and
// pushes vertices near the midline outward to form a groove.
func deformCerebrum(v r3.Vec, noise float64) r3.Vec {
	y := v.Y
	if y < 0 {
		y *= 0.8
	}
	groove := 0.0
	if math.Abs(v.X) < grooveHalfWidth {
		groove = grooveHalfWidth * sign(v.X)
	}
	return r3.Vec{
		X: v.X + groove + noise*0.5,
		Y: y + noise*0.3,
		Z: v.Z*1.2 + noise*0.5,
	}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func anatomyMaterial(hex uint32) domain.Material {
	return domain.Material{
		Color:       domain.RGBFromHex(hex),
		Opacity:     anatomyOpacity,
		Transparent: true,
	}
}

// sphereVertices generates a UV sphere grid of (width+1)*(height+1) vertices.
func sphereVertices(radius float64, widthSegments, heightSegments int) []r3.Vec {
	verts := make([]r3.Vec, 0, (widthSegments+1)*(heightSegments+1))
	for iy := 0; iy <= heightSegments; iy++ {
		theta := float64(iy) / float64(heightSegments) * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			phi := float64(ix) / float64(widthSegments) * 2 * math.Pi
			verts = append(verts, r3.Vec{
				X: -radius * math.Cos(phi) * math.Sin(theta),
				Y: radius * math.Cos(theta),
				Z: radius * math.Sin(phi) * math.Sin(theta),
			})
		}
	}
	return verts
}

// cylinderVertices generates the two rims of an open cylinder centred on
// the origin along y, plus the two cap centres.
func cylinderVertices(radiusTop, radiusBottom, height float64, radialSegments int) []r3.Vec {
	verts := make([]r3.Vec, 0, 2*(radialSegments+1)+2)
	for iy := 0; iy <= 1; iy++ {
		v := float64(iy)
		radius := v*(radiusBottom-radiusTop) + radiusTop
		y := -v*height + height/2
		for ix := 0; ix <= radialSegments; ix++ {
			theta := float64(ix) / float64(radialSegments) * 2 * math.Pi
			verts = append(verts, r3.Vec{X: radius * math.Sin(theta), Y: y, Z: radius * math.Cos(theta)})
		}
	}
	return append(verts, r3.Vec{Y: height / 2}, r3.Vec{Y: -height / 2})
}

// sceneLights returns the fixed ambient and directional lights.
func sceneLights() []domain.Light {
	return []domain.Light{
		{Kind: domain.LightAmbient, Color: domain.RGBFromHex(ambientColor), Intensity: 1},
		{
			Kind:      domain.LightDirectional,
			Color:     domain.RGBFromHex(directionalColor),
			Intensity: directionalIntensity,
			Position:  domain.Vec3{X: 1, Y: 1, Z: 1},
		},
	}
}

func sceneCamera(width, height int) domain.Camera {
	return domain.Camera{
		FOV:      cameraFOV,
		Near:     cameraNear,
		Far:      cameraFar,
		Aspect:   aspect(width, height),
		Position: domain.Vec3{Z: cameraZ},
	}
}

func aspect(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float64(width) / float64(height)
}

func toDomain(vs []r3.Vec) []domain.Vec3 {
	out := make([]domain.Vec3, len(vs))
	for i, v := range vs {
		out[i] = domain.Vec3{X: v.X, Y: v.Y, Z: v.Z}
	}
	return out
}

func toR3(v domain.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// meshToWorld applies a mesh's scale, XYZ Euler rotation and position,
// then the group spin about y.
func meshToWorld(m *domain.Mesh, local domain.Vec3, groupRotationY float64) r3.Vec {
	p := toR3(local)
	p = r3.Vec{X: p.X * m.Scale.X, Y: p.Y * m.Scale.Y, Z: p.Z * m.Scale.Z}
	p = eulerXYZ(p, m.Rotation)
	p = r3.Add(p, toR3(m.Position))
	return r3.Rotate(p, groupRotationY, r3.Vec{Y: 1})
}

// eulerXYZ rotates p by the intrinsic XYZ Euler angles in r.
func eulerXYZ(p r3.Vec, r domain.Vec3) r3.Vec {
	if r.Z != 0 {
		p = r3.Rotate(p, r.Z, r3.Vec{Z: 1})
	}
	if r.Y != 0 {
		p = r3.Rotate(p, r.Y, r3.Vec{Y: 1})
	}
	if r.X != 0 {
		p = r3.Rotate(p, r.X, r3.Vec{X: 1})
	}
	return p
}
