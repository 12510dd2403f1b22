package engine

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewer)

// WithSceneName sets the name of the scene graph root.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithSceneName(name string) ViewerBuilderOption {
	return func(v *viewer) {
		v.sceneName = name
	}
}

// WithBackground sets the scene clear color. Defaults to DefaultBackground.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithBackground(c common.Color) ViewerBuilderOption {
	return func(v *viewer) {
		v.background = c
	}
}

// WithCameraOptions overrides the viewer camera defaults.
//
// Parameters:
//   - options: camera options applied after the viewer defaults
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithCameraOptions(options ...camera.CameraBuilderOption) ViewerBuilderOption {
	return func(v *viewer) {
		v.cameraOptions = append(v.cameraOptions, options...)
	}
}

// WithRigOptions overrides the lighting rig defaults.
//
// Parameters:
//   - options: rig options
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithRigOptions(options ...light.RigBuilderOption) ViewerBuilderOption {
	return func(v *viewer) {
		v.rigOptions = append(v.rigOptions, options...)
	}
}

// WithControllerOptions overrides the orbit controller defaults.
//
// Parameters:
//   - options: orbit controller options
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithControllerOptions(options ...camera.OrbitControllerBuilderOption) ViewerBuilderOption {
	return func(v *viewer) {
		v.controllerOptions = append(v.controllerOptions, options...)
	}
}

// WithLoopOptions passes options through to the render loop.
//
// Parameters:
//   - options: render loop options
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithLoopOptions(options ...RenderLoopBuilderOption) ViewerBuilderOption {
	return func(v *viewer) {
		v.loopOptions = append(v.loopOptions, options...)
	}
}

// WithViewerProfiling enables per-second FPS, draw count and heap logging.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithViewerProfiling(enabled bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.profilingEnabled = enabled
	}
}

// WithLoadCallback sets the function notified when a model load finishes.
//
// Parameters:
//   - cb: the callback
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithLoadCallback(cb LoadCallback) ViewerBuilderOption {
	return func(v *viewer) {
		v.onLoad = cb
	}
}
