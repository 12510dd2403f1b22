package light

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	name         string
	position     mgl32.Vec3
	target       mgl32.Vec3
	color        common.Color
	intensity    float32
	enabled      bool
	castsShadows bool
}

// Light defines a directional light source. Like a distant sun it has no
// attenuation: only the direction from Position toward Target matters for
// shading, Position itself is kept for placement and shadow framing.
//
// Lights are scene children (scene.NodeKindLight) and are packed into the
// renderer's frame uniform every frame via the gpu_types helpers.
type Light interface {
	scene.Node

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// Target returns the world-space point the light is aimed at.
	//
	// Returns:
	//   - mgl32.Vec3: aim point
	Target() mgl32.Vec3

	// Direction returns the normalized direction the light travels, from Position toward Target.
	// Returns (0, -1, 0) when Position and Target coincide.
	//
	// Returns:
	//   - mgl32.Vec3: normalized direction
	Direction() mgl32.Vec3

	// Color returns the color of the light.
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Enabled returns whether the light contributes to shading.
	Enabled() bool

	// CastsShadows returns whether the light is flagged as a shadow caster.
	CastsShadows() bool

	// SetPosition moves the light.
	SetPosition(p mgl32.Vec3)

	// SetTarget re-aims the light.
	SetTarget(t mgl32.Vec3)

	// SetColor sets the light color.
	SetColor(c common.Color)

	// SetIntensity sets the intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	SetEnabled(enabled bool)

	// SetCastsShadows sets the shadow caster flag.
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewDirectionalLight creates a white directional light with intensity 1, placed at
// (0, 1, 0) and aimed at the origin.
//
// Parameters:
//   - name: the light's display name
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewDirectionalLight(name string, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		name:      name,
		position:  mgl32.Vec3{0, 1, 0},
		color:     common.Color{R: 1, G: 1, B: 1, A: 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) NodeName() string {
	return l.name
}

func (l *lightImpl) NodeKind() scene.NodeKind {
	return scene.NodeKindLight
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	d := l.target.Sub(l.position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetTarget(t mgl32.Vec3) {
	l.target = t
}

func (l *lightImpl) SetColor(c common.Color) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}
