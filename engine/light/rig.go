package light

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Rig defaults.
const (
	DefaultRigDistance  float32 = 200
	DefaultRigIntensity float32 = 1
)

// rigConfig holds the settings shared by every light in a rig.
type rigConfig struct {
	distance     float32
	intensity    float32
	color        common.Color
	castsShadows bool
}

// RigBuilderOption is a functional option for configuring AddRig.
type RigBuilderOption func(*rigConfig)

// WithRigDistance sets how far from the origin each rig light sits.
func WithRigDistance(distance float32) RigBuilderOption {
	return func(c *rigConfig) {
		c.distance = distance
	}
}

// WithRigIntensity sets the intensity of every rig light.
func WithRigIntensity(intensity float32) RigBuilderOption {
	return func(c *rigConfig) {
		c.intensity = intensity
	}
}

// WithRigColor sets the color of every rig light.
func WithRigColor(color common.Color) RigBuilderOption {
	return func(c *rigConfig) {
		c.color = color
	}
}

// WithRigShadows sets the shadow caster flag on every rig light.
func WithRigShadows(castsShadows bool) RigBuilderOption {
	return func(c *rigConfig) {
		c.castsShadows = castsShadows
	}
}

// AddRig surrounds the origin with four white directional lights at (+d, 0, 0),
// (-d, 0, 0), (0, +d, 0) and (0, -d, 0), each aimed at the origin and flagged as a
// shadow caster, and adds them to s in that order. d defaults to 200.
//
// Parameters:
//   - s: the scene to add the lights to (must not be nil)
//   - opts: functional options overriding the rig defaults
//
// Returns:
//   - []Light: the four lights, in insertion order
func AddRig(s scene.Scene, opts ...RigBuilderOption) []Light {
	if s == nil {
		panic("light: AddRig requires a non-nil Scene")
	}

	cfg := rigConfig{
		distance:     DefaultRigDistance,
		intensity:    DefaultRigIntensity,
		color:        common.ColorFromHex(0xFFFFFF),
		castsShadows: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := cfg.distance
	positions := [4]mgl32.Vec3{
		{d, 0, 0},
		{-d, 0, 0},
		{0, d, 0},
		{0, -d, 0},
	}

	lights := make([]Light, 0, len(positions))
	for i, p := range positions {
		l := NewDirectionalLight(fmt.Sprintf("rig_light_%d", i),
			WithPosition(p),
			WithTarget(mgl32.Vec3{}),
			WithColor(cfg.color),
			WithIntensity(cfg.intensity),
			WithCastsShadows(cfg.castsShadows),
		)
		s.Add(l)
		lights = append(lights, l)
	}
	return lights
}
