package camera

import "github.com/go-gl/mathgl/mgl32"

// Viewer camera defaults.
const (
	DefaultFov  float32 = 75.0
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 1000.0
)

// DefaultPosition is the viewer camera's starting eye position.
var DefaultPosition = mgl32.Vec3{0, 150, 400}

// NewViewerCamera creates the camera used by the model viewer: 75° field of view,
// clip planes at 0.1 and 1000, positioned at (0, 150, 400) and aimed at the origin.
// The aspect ratio is taken from the viewport size; a zero height yields an aspect of 1.
// Options are applied after the defaults and may override any of them.
//
// Parameters:
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//   - options: functional options overriding the defaults
//
// Returns:
//   - Camera: the configured camera with its projection committed
func NewViewerCamera(width, height int, options ...CameraBuilderOption) Camera {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}

	opts := []CameraBuilderOption{
		WithFov(DefaultFov),
		WithAspect(aspect),
		WithNear(DefaultNear),
		WithFar(DefaultFar),
		WithPosition(DefaultPosition),
		WithTarget(mgl32.Vec3{}),
	}
	return NewCamera(append(opts, options...)...)
}
