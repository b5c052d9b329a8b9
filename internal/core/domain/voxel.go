package domain

import "math"

// Activation mapping constants.
const (
	// SourceSpan is the extent of the source coordinate space per axis.
	SourceSpan = 100.0

	// SignificanceThreshold separates individually animated samples from
	// the batched point cloud. Samples strictly above it are significant.
	SignificanceThreshold = 0.6

	// HueRange is the hue at zero activation; full activation maps to 0 (red).
	HueRange = 0.7

	// ActivationSaturation and ActivationLightness are fixed for all samples.
	ActivationSaturation = 1.0
	ActivationLightness  = 0.5
)

// NormalizeCoord maps a source coordinate in [0,100] to [-1,1].
func NormalizeCoord(c float64) float64 {
	return c/(SourceSpan/2) - 1
}

// Position returns the normalised scene position of a sample.
func (s VoxelSample) Position() Vec3 {
	return Vec3{X: NormalizeCoord(s.X), Y: NormalizeCoord(s.Y), Z: NormalizeCoord(s.Z)}
}

// IsSignificant returns true for samples rendered as animated spheres.
func (s VoxelSample) IsSignificant() bool {
	return s.Value > SignificanceThreshold
}

// Hue maps an activation value to a hue in [0,0.7]: 0.7 is blue, 0 is red.
func Hue(value float64) float64 {
	return HueRange - value*HueRange
}

// ActivationColor returns the display colour for an activation value.
func ActivationColor(value float64) RGB {
	return HSL(Hue(value), ActivationSaturation, ActivationLightness)
}

// HSL converts hue, saturation and lightness (all in [0,1]) to RGB.
func HSL(h, s, l float64) RGB {
	h = h - math.Floor(h)
	if s == 0 {
		return RGB{R: l, G: l, B: l}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return RGB{
		R: hueToChannel(p, q, h+1.0/3),
		G: hueToChannel(p, q, h),
		B: hueToChannel(p, q, h-1.0/3),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
