package domain

import (
	"fmt"
	"time"
)

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// RGB is a colour with channels in [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGBFromHex converts a 0xRRGGBB value.
func RGBFromHex(hex uint32) RGB {
	return RGB{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
	}
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return int(v*255 + 0.5)
	}
}

// Blend describes how a layer composites over what is below it.
type Blend string

// Blend modes.
const (
	BlendNormal Blend = "normal"
	BlendScreen Blend = "screen"
)

// Material is the surface appearance of a mesh.
type Material struct {
	Color       RGB     `json:"color"`
	Opacity     float64 `json:"opacity"`
	Transparent bool    `json:"transparent"`
}

// GeometryKind names the primitive a mesh was generated from.
type GeometryKind string

// Geometry kinds.
const (
	GeometrySphere   GeometryKind = "sphere"
	GeometryCylinder GeometryKind = "cylinder"
)

// Mesh is a positioned, coloured vertex set. Vertices are in local space;
// Scale, Rotation (Euler, radians) and Position are applied in that order.
type Mesh struct {
	Name     string       `json:"name"`
	Kind     GeometryKind `json:"kind"`
	Vertices []Vec3       `json:"-"`
	Position Vec3         `json:"position"`
	Rotation Vec3         `json:"rotation"`
	Scale    Vec3         `json:"scale"`
	Material Material     `json:"material"`
}

// Anatomy is the static illustrative brain mesh group.
type Anatomy struct {
	Meshes []Mesh `json:"meshes"`
}

// LightKind distinguishes ambient from directional light.
type LightKind string

// Light kinds.
const (
	LightAmbient     LightKind = "ambient"
	LightDirectional LightKind = "directional"
)

// Light is a scene light source.
type Light struct {
	Kind      LightKind `json:"kind"`
	Color     RGB       `json:"color"`
	Intensity float64   `json:"intensity"`
	Position  Vec3      `json:"position"`
}

// Camera is a perspective camera looking down -Z.
type Camera struct {
	FOV      float64 `json:"fov"`
	Near     float64 `json:"near"`
	Far      float64 `json:"far"`
	Aspect   float64 `json:"aspect"`
	Position Vec3    `json:"position"`
}

// ActivationSphere is one significant sample and its glow shell, with the
// pulse scales evaluated for the current frame.
type ActivationSphere struct {
	Value       float64 `json:"value"`
	Position    Vec3    `json:"position"`
	Color       RGB     `json:"color"`
	Radius      float64 `json:"radius"`
	Opacity     float64 `json:"opacity"`
	Scale       float64 `json:"scale"`
	GlowRadius  float64 `json:"glow_radius"`
	GlowOpacity float64 `json:"glow_opacity"`
	GlowScale   float64 `json:"glow_scale"`
}

// PointCloud is the batched primitive for ambient samples.
type PointCloud struct {
	Positions []Vec3    `json:"-"`
	Colors    []RGB     `json:"-"`
	Sizes     []float64 `json:"-"`
	PointSize float64   `json:"point_size"`
	Opacity   float64   `json:"opacity"`
}

// Len returns the number of points, tolerating a nil receiver.
func (p *PointCloud) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Positions)
}

// Frame is one rendered snapshot of a mounted volumetric scene. Anatomy and
// Points are shared, read-only data owned by the scene.
type Frame struct {
	Seq            uint64             `json:"seq"`
	Elapsed        time.Duration      `json:"elapsed"`
	Width          int                `json:"width"`
	Height         int                `json:"height"`
	Camera         Camera             `json:"camera"`
	Lights         []Light            `json:"lights"`
	Anatomy        *Anatomy           `json:"-"`
	BrainRotationY float64            `json:"brain_rotation_y"`
	GroupRotationY float64            `json:"group_rotation_y"`
	Spheres        []ActivationSphere `json:"spheres"`
	Points         *PointCloud        `json:"-"`
}

// PointLayer orders projected points when a host rasterises them.
type PointLayer int

// Layers, back to front.
const (
	LayerAnatomy PointLayer = iota
	LayerAmbient
	LayerGlow
	LayerActivation
)

// ProjectedPoint is one scene point mapped to surface coordinates.
// Depth grows away from the camera.
type ProjectedPoint struct {
	X       float64
	Y       float64
	Depth   float64
	Color   RGB
	Opacity float64
	Size    float64
	Layer   PointLayer
}
