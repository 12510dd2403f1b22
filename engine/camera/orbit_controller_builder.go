package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControllerBuilderOption is a functional option for configuring an OrbitController.
type OrbitControllerBuilderOption func(*orbitControllerImpl)

// WithOrbitTarget sets the point the camera orbits around. Defaults to the camera's current target.
//
// Parameters:
//   - t: the orbit target
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithOrbitTarget(t mgl32.Vec3) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.target = t
	}
}

// WithDamping enables or disables damping. Enabled by default.
//
// Parameters:
//   - enabled: whether pending motion is smoothed across frames
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithDamping(enabled bool) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.enableDamping = enabled
	}
}

// WithDampingFactor sets the fraction of pending motion applied per Update. Values outside (0, 1] are ignored.
//
// Parameters:
//   - factor: the damping factor
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithDampingFactor(factor float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		if factor > 0 && factor <= 1 {
			oc.dampingFactor = factor
		}
	}
}

// WithRotateSpeed scales drag rotation.
func WithRotateSpeed(speed float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed scales wheel zoom.
func WithZoomSpeed(speed float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}

// WithPanSpeed scales drag panning.
func WithPanSpeed(speed float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.panSpeed = speed
	}
}

// WithKeyPanSpeed sets how many pixels one arrow key press pans by. Defaults to 7.
func WithKeyPanSpeed(pixels float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.keyPanSpeed = pixels
	}
}

// WithDistanceLimits bounds the distance between camera and target.
//
// Parameters:
//   - minDistance: closest allowed distance
//   - maxDistance: furthest allowed distance
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithDistanceLimits(minDistance, maxDistance float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		if minDistance >= 0 && maxDistance >= minDistance {
			oc.minDistance = minDistance
			oc.maxDistance = maxDistance
		}
	}
}

// WithPolarLimits bounds the polar angle, in radians from the up axis.
//
// Parameters:
//   - minAngle: smallest allowed polar angle
//   - maxAngle: largest allowed polar angle
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithPolarLimits(minAngle, maxAngle float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		if maxAngle >= minAngle {
			oc.minPolarAngle = minAngle
			oc.maxPolarAngle = maxAngle
		}
	}
}

// WithViewportSize sets the initial viewport size used to scale pointer deltas.
//
// Parameters:
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithViewportSize(width, height int) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		if width > 0 && height > 0 {
			oc.width = width
			oc.height = height
		}
	}
}
