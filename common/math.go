package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DegToRad converts an angle in degrees to radians.
//
// Parameters:
//   - deg: angle in degrees
//
// Returns:
//   - float32: angle in radians
func DegToRad(deg float32) float32 {
	return deg * (math.Pi / 180.0)
}

// Perspective creates a perspective projection matrix for WebGPU clip space, where depth
// maps to [0, 1] rather than OpenGL's [-1, 1]. mgl32.Perspective targets the OpenGL range,
// so the matrix is built here directly.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// Spherical holds a point in spherical coordinates relative to an origin, using the
// Y-up convention: Phi is the polar angle from +Y, Theta the azimuth around Y measured
// from +Z toward +X.
type Spherical struct {
	Radius float32
	Phi    float32
	Theta  float32
}

// SphericalFromVec3 converts a Cartesian offset into spherical coordinates.
//
// Parameters:
//   - v: the offset vector
//
// Returns:
//   - Spherical: the equivalent spherical coordinates (all zero for a zero vector)
func SphericalFromVec3(v mgl32.Vec3) Spherical {
	r := v.Len()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  float32(math.Atan2(float64(v.X()), float64(v.Z()))),
		Phi:    float32(math.Acos(float64(Clamp(v.Y()/r, -1, 1)))),
	}
}

// Vec3 converts spherical coordinates back into a Cartesian offset.
//
// Returns:
//   - mgl32.Vec3: the offset vector
func (s Spherical) Vec3() mgl32.Vec3 {
	sinPhi := float32(math.Sin(float64(s.Phi)))
	return mgl32.Vec3{
		s.Radius * sinPhi * float32(math.Sin(float64(s.Theta))),
		s.Radius * float32(math.Cos(float64(s.Phi))),
		s.Radius * sinPhi * float32(math.Cos(float64(s.Theta))),
	}
}

// MakeSafe keeps Phi strictly inside (0, π) so the look-at basis never degenerates.
//
// Returns:
//   - Spherical: the adjusted coordinates
func (s Spherical) MakeSafe() Spherical {
	const eps = 1e-6
	s.Phi = Clamp(s.Phi, eps, math.Pi-eps)
	return s
}
