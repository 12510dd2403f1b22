package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// MouseButton identifies a pointer button independently of the windowing backend.
type MouseButton int

const (
	// MouseButtonLeft is the primary button. Orbit controls rotate with it.
	MouseButtonLeft MouseButton = iota

	// MouseButtonRight is the secondary button. Orbit controls pan with it.
	MouseButtonRight

	// MouseButtonMiddle is the wheel button. Orbit controls pan with it as well.
	MouseButtonMiddle
)
