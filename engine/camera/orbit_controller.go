package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitEpsilon is the squared distance below which an Update is not reported as movement.
const orbitEpsilon = 1e-6

type orbitState int

const (
	orbitStateNone orbitState = iota
	orbitStateRotate
	orbitStatePan
)

// OrbitController orbits a Camera around a target point in response to pointer and
// keyboard input. Input handlers only accumulate deltas; Update applies them to the
// camera, so it must be called once per frame before drawing.
type OrbitController interface {
	// Camera returns the controlled camera.
	Camera() Camera

	// Target returns the point the camera orbits around.
	//
	// Returns:
	//   - mgl32.Vec3: the orbit target
	Target() mgl32.Vec3

	// SetTarget moves the orbit target. Takes effect on the next Update.
	//
	// Parameters:
	//   - t: the new orbit target
	SetTarget(t mgl32.Vec3)

	// Enabled reports whether input is being accepted.
	Enabled() bool

	// SetEnabled enables or disables input handling. Pending damping still settles.
	SetEnabled(enabled bool)

	// DampingEnabled reports whether motion is smoothed across frames.
	DampingEnabled() bool

	// SetDampingEnabled toggles damping.
	SetDampingEnabled(enabled bool)

	// DampingFactor returns the fraction of pending motion applied per Update.
	DampingFactor() float32

	// SetViewportSize records the viewport size used to convert pixel deltas into angles and distances.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	SetViewportSize(width, height int)

	// HandleMouseButton starts or ends a drag. Left rotates; right and middle pan.
	//
	// Parameters:
	//   - button: the pointer button
	//   - pressed: true on press, false on release
	//   - x, y: cursor position in pixels
	HandleMouseButton(button common.MouseButton, pressed bool, x, y float64)

	// HandleCursorMove continues an active drag.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	HandleCursorMove(x, y float64)

	// HandleScroll zooms. Positive offsets (wheel up) move the camera closer.
	//
	// Parameters:
	//   - yOffset: vertical scroll offset
	HandleScroll(yOffset float64)

	// HandleKey pans with the arrow keys.
	//
	// Parameters:
	//   - key: the key code (see common.Key*)
	//   - pressed: true on press or repeat
	HandleKey(key int, pressed bool)

	// RotateLeft queues a rotation around the up axis.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateLeft(angle float32)

	// RotateUp queues a rotation toward the pole.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateUp(angle float32)

	// Pan queues a screen-space translation of the target.
	//
	// Parameters:
	//   - deltaX, deltaY: translation in pixels
	Pan(deltaX, deltaY float32)

	// DollyIn multiplies the pending distance scale by scale. The wheel passes 0.95^zoomSpeed.
	DollyIn(scale float32)

	// DollyOut divides the pending distance scale by scale.
	DollyOut(scale float32)

	// Update applies pending motion to the camera and decays it when damping is enabled.
	//
	// Returns:
	//   - bool: true if the camera moved more than a small epsilon
	Update() bool

	// SaveState records the current camera position and target for Reset.
	SaveState()

	// Reset restores the last saved state and drops all pending motion.
	Reset()
}

type orbitControllerImpl struct {
	mu *sync.Mutex

	cam    Camera
	target mgl32.Vec3

	enabled       bool
	enableDamping bool
	dampingFactor float32

	rotateSpeed float32
	zoomSpeed   float32
	panSpeed    float32
	keyPanSpeed float32

	minDistance, maxDistance     float32
	minPolarAngle, maxPolarAngle float32

	width, height int

	// Pending motion.
	sphericalDelta common.Spherical
	panOffset      mgl32.Vec3
	scale          float32
	zoomChanged    bool

	// Drag state.
	state      orbitState
	dragStartX float64
	dragStartY float64

	lastPosition mgl32.Vec3
	lastTarget   mgl32.Vec3

	savedPosition mgl32.Vec3
	savedTarget   mgl32.Vec3
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an OrbitController bound to cam, orbiting the camera's current target.
// Damping is enabled with a factor of 0.05.
//
// Parameters:
//   - cam: the camera to control (must not be nil)
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(cam Camera, options ...OrbitControllerBuilderOption) OrbitController {
	if cam == nil {
		panic("camera: NewOrbitController requires a non-nil Camera")
	}

	oc := &orbitControllerImpl{
		mu:            &sync.Mutex{},
		cam:           cam,
		target:        cam.Target(),
		enabled:       true,
		enableDamping: true,
		dampingFactor: 0.05,
		rotateSpeed:   1.0,
		zoomSpeed:     1.0,
		panSpeed:      1.0,
		keyPanSpeed:   7.0,
		minDistance:   0,
		maxDistance:   float32(math.Inf(1)),
		minPolarAngle: 0,
		maxPolarAngle: math.Pi,
		width:         1,
		height:        1,
		scale:         1,
	}

	for _, option := range options {
		option(oc)
	}

	oc.lastPosition = cam.Position()
	oc.lastTarget = oc.target
	oc.savedPosition = oc.lastPosition
	oc.savedTarget = oc.target
	cam.LookAt(oc.target)
	return oc
}

func (oc *orbitControllerImpl) Camera() Camera {
	return oc.cam
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(t mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = t
}

func (oc *orbitControllerImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControllerImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
	if !enabled {
		oc.state = orbitStateNone
	}
}

func (oc *orbitControllerImpl) DampingEnabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enableDamping
}

func (oc *orbitControllerImpl) SetDampingEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enableDamping = enabled
}

func (oc *orbitControllerImpl) DampingFactor() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.dampingFactor
}

func (oc *orbitControllerImpl) SetViewportSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.width = width
	oc.height = height
}

func (oc *orbitControllerImpl) HandleMouseButton(button common.MouseButton, pressed bool, x, y float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !pressed {
		oc.state = orbitStateNone
		return
	}
	if !oc.enabled {
		return
	}

	switch button {
	case common.MouseButtonLeft:
		oc.state = orbitStateRotate
	case common.MouseButtonRight, common.MouseButtonMiddle:
		oc.state = orbitStatePan
	default:
		return
	}
	oc.dragStartX, oc.dragStartY = x, y
}

func (oc *orbitControllerImpl) HandleCursorMove(x, y float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled || oc.state == orbitStateNone {
		return
	}

	dx := float32(x - oc.dragStartX)
	dy := float32(y - oc.dragStartY)
	oc.dragStartX, oc.dragStartY = x, y

	switch oc.state {
	case orbitStateRotate:
		h := float32(oc.height)
		oc.rotateLeft(2 * math.Pi * dx * oc.rotateSpeed / h)
		oc.rotateUp(2 * math.Pi * dy * oc.rotateSpeed / h)
	case orbitStatePan:
		oc.pan(dx*oc.panSpeed, dy*oc.panSpeed)
	}
}

func (oc *orbitControllerImpl) HandleScroll(yOffset float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	switch {
	case yOffset > 0:
		oc.dollyIn(oc.zoomScale())
	case yOffset < 0:
		oc.dollyOut(oc.zoomScale())
	}
}

func (oc *orbitControllerImpl) HandleKey(key int, pressed bool) {
	if !pressed {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	switch key {
	case common.KeyUp:
		oc.pan(0, oc.keyPanSpeed)
	case common.KeyDown:
		oc.pan(0, -oc.keyPanSpeed)
	case common.KeyLeft:
		oc.pan(oc.keyPanSpeed, 0)
	case common.KeyRight:
		oc.pan(-oc.keyPanSpeed, 0)
	}
}

func (oc *orbitControllerImpl) RotateLeft(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.rotateLeft(angle)
}

func (oc *orbitControllerImpl) RotateUp(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.rotateUp(angle)
}

func (oc *orbitControllerImpl) Pan(deltaX, deltaY float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.pan(deltaX, deltaY)
}

func (oc *orbitControllerImpl) DollyIn(scale float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.dollyIn(scale)
}

func (oc *orbitControllerImpl) DollyOut(scale float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.dollyOut(scale)
}

func (oc *orbitControllerImpl) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	position := oc.cam.Position()
	spherical := common.SphericalFromVec3(position.Sub(oc.target))

	if oc.enableDamping {
		spherical.Theta += oc.sphericalDelta.Theta * oc.dampingFactor
		spherical.Phi += oc.sphericalDelta.Phi * oc.dampingFactor
	} else {
		spherical.Theta += oc.sphericalDelta.Theta
		spherical.Phi += oc.sphericalDelta.Phi
	}

	spherical.Phi = common.Clamp(spherical.Phi, oc.minPolarAngle, oc.maxPolarAngle)
	spherical = spherical.MakeSafe()

	spherical.Radius = common.Clamp(spherical.Radius*oc.scale, oc.minDistance, oc.maxDistance)

	if oc.enableDamping {
		oc.target = oc.target.Add(oc.panOffset.Mul(oc.dampingFactor))
	} else {
		oc.target = oc.target.Add(oc.panOffset)
	}

	position = oc.target.Add(spherical.Vec3())
	oc.cam.SetPosition(position)
	oc.cam.LookAt(oc.target)

	if oc.enableDamping {
		decay := 1 - oc.dampingFactor
		oc.sphericalDelta.Theta *= decay
		oc.sphericalDelta.Phi *= decay
		oc.panOffset = oc.panOffset.Mul(decay)
	} else {
		oc.sphericalDelta = common.Spherical{}
		oc.panOffset = mgl32.Vec3{}
	}
	oc.scale = 1

	moved := oc.zoomChanged ||
		distSq(oc.lastPosition, position) > orbitEpsilon ||
		distSq(oc.lastTarget, oc.target) > orbitEpsilon
	if moved {
		oc.lastPosition = position
		oc.lastTarget = oc.target
		oc.zoomChanged = false
	}
	return moved
}

func (oc *orbitControllerImpl) SaveState() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.savedPosition = oc.cam.Position()
	oc.savedTarget = oc.target
}

func (oc *orbitControllerImpl) Reset() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = oc.savedTarget
	oc.cam.SetPosition(oc.savedPosition)
	oc.cam.LookAt(oc.target)
	oc.sphericalDelta = common.Spherical{}
	oc.panOffset = mgl32.Vec3{}
	oc.scale = 1
	oc.state = orbitStateNone
	oc.lastPosition = oc.savedPosition
	oc.lastTarget = oc.savedTarget
}

// rotateLeft, rotateUp, pan, dollyIn and dollyOut accumulate pending motion.
// Caller must hold the mutex.

func (oc *orbitControllerImpl) rotateLeft(angle float32) {
	oc.sphericalDelta.Theta -= angle
}

func (oc *orbitControllerImpl) rotateUp(angle float32) {
	oc.sphericalDelta.Phi -= angle
}

// pan converts a pixel delta into a world-space target offset so that content under the
// cursor tracks the pointer at the target's depth.
func (oc *orbitControllerImpl) pan(deltaX, deltaY float32) {
	position := oc.cam.Position()
	offset := position.Sub(oc.target)
	targetDistance := offset.Len() * float32(math.Tan(float64(common.DegToRad(oc.cam.Fov())/2)))
	if targetDistance == 0 {
		return
	}

	forward := offset.Mul(-1).Normalize()
	right := forward.Cross(oc.cam.Up()).Normalize()
	up := right.Cross(forward)

	h := float32(oc.height)
	left := 2 * deltaX * targetDistance / h
	upward := 2 * deltaY * targetDistance / h

	oc.panOffset = oc.panOffset.Add(right.Mul(-left)).Add(up.Mul(upward))
}

func (oc *orbitControllerImpl) dollyIn(scale float32) {
	if scale <= 0 {
		return
	}
	oc.scale *= scale
	oc.zoomChanged = true
}

func (oc *orbitControllerImpl) dollyOut(scale float32) {
	if scale <= 0 {
		return
	}
	oc.scale /= scale
	oc.zoomChanged = true
}

func (oc *orbitControllerImpl) zoomScale() float32 {
	return float32(math.Pow(0.95, float64(oc.zoomSpeed)))
}

func distSq(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}
