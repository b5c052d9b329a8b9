package services

import (
	"math"
	"math/rand"
	"time"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// Activation primitive parameters.
const (
	sphereRadius      = 0.08
	sphereMaxOpacity  = 0.9
	spherePulseGrowth = 1.5

	glowRadius     = 0.12
	glowOpacity    = 0.3
	glowScaleStart = 1.5
	glowScaleEnd   = 1.8

	pointSize    = 0.1
	pointOpacity = 0.7
	pointSizeMul = 5.0

	// groupPeriod is one full turn of the activation group.
	groupPeriod = 120 * time.Second
	// brainSpinPerFrame is the anatomy's own rotation per rendered frame.
	brainSpinPerFrame = 0.002
)

// Pulse period ranges, per instance.
var (
	spherePeriodMin = time.Second
	spherePeriodMax = 1500 * time.Millisecond
	glowPeriodMin   = 1500 * time.Millisecond
	glowPeriodMax   = 2 * time.Second
)

// pulse is an indefinite yoyo tween with sine in-out easing.
type pulse struct {
	from   float64
	to     float64
	period time.Duration
}

// at evaluates the pulse after elapsed time.
func (p pulse) at(elapsed time.Duration) float64 {
	if p.period <= 0 {
		return p.from
	}
	cycle := float64(elapsed%(2*p.period)) / float64(p.period)
	progress := cycle
	if cycle > 1 {
		progress = 2 - cycle
	}
	eased := -(math.Cos(math.Pi*progress) - 1) / 2
	return p.from + (p.to-p.from)*eased
}

// pulsingSphere is a significant sample with its two independent pulses.
type pulsingSphere struct {
	sample domain.VoxelSample
	base   domain.ActivationSphere
	scale  pulse
	glow   pulse
}

func (s *pulsingSphere) at(elapsed time.Duration) domain.ActivationSphere {
	out := s.base
	out.Scale = s.scale.at(elapsed)
	out.GlowScale = s.glow.at(elapsed)
	return out
}

func randomPeriod(rng *rand.Rand, lo, hi time.Duration) time.Duration {
	return lo + time.Duration(rng.Float64()*float64(hi-lo))
}

// activationField is the classified voxel content of a scene.
type activationField struct {
	spheres []pulsingSphere
	points  *domain.PointCloud
}

// classifySamples splits samples into individually animated spheres and
// one batched point cloud. The point cloud is nil when it would be empty.
func classifySamples(samples []domain.VoxelSample, rng *rand.Rand) activationField {
	var field activationField
	cloud := &domain.PointCloud{PointSize: pointSize, Opacity: pointOpacity}

	for _, s := range samples {
		pos := s.Position()
		color := domain.ActivationColor(s.Value)
		if !s.IsSignificant() {
			cloud.Positions = append(cloud.Positions, pos)
			cloud.Colors = append(cloud.Colors, color)
			cloud.Sizes = append(cloud.Sizes, s.Value*pointSizeMul)
			continue
		}

		field.spheres = append(field.spheres, pulsingSphere{
			sample: s,
			base: domain.ActivationSphere{
				Value:       s.Value,
				Position:    pos,
				Color:       color,
				Radius:      sphereRadius,
				Opacity:     math.Min(sphereMaxOpacity, s.Value),
				Scale:       s.Value,
				GlowRadius:  glowRadius,
				GlowOpacity: glowOpacity,
				GlowScale:   glowScaleStart,
			},
			scale: pulse{
				from:   s.Value,
				to:     s.Value * spherePulseGrowth,
				period: randomPeriod(rng, spherePeriodMin, spherePeriodMax),
			},
			glow: pulse{
				from:   glowScaleStart,
				to:     glowScaleEnd,
				period: randomPeriod(rng, glowPeriodMin, glowPeriodMax),
			},
		})
	}

	if cloud.Len() > 0 {
		field.points = cloud
	}
	return field
}

// groupRotation is the activation group's angle after elapsed time,
// wrapped to [0, 2*pi).
func groupRotation(elapsed time.Duration) float64 {
	turns := float64(elapsed%groupPeriod) / float64(groupPeriod)
	return turns * 2 * math.Pi
}
