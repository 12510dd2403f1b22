package engine

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// SceneRenderer is the part of the renderer the viewer drives.
type SceneRenderer interface {
	Render(s scene.Scene, cam camera.Camera) error
	Resize(width, height int) error
}

// ViewportSizer receives the framebuffer size. The orbit controller is one.
type ViewportSizer interface {
	SetViewportSize(width, height int)
}

// ResizeHandler reacts to framebuffer size changes.
type ResizeHandler interface {
	// Handle applies a framebuffer size change: it sets the camera aspect, commits the
	// projection, resizes the renderer surface, updates the controller viewport and draws once.
	// Events with a zero or negative dimension (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if the surface resize or the immediate draw failed
	Handle(width, height int) error
}

type resizeHandler struct {
	mu *sync.Mutex

	scene      scene.Scene
	camera     camera.Camera
	renderer   SceneRenderer
	controller ViewportSizer
}

var _ ResizeHandler = &resizeHandler{}

// NewResizeHandler creates a ResizeHandler for the given scene, camera and renderer.
//
// Parameters:
//   - s: the scene drawn after each resize
//   - cam: the camera whose aspect tracks the framebuffer
//   - r: the renderer whose surface tracks the framebuffer
//   - controller: optional viewport consumer (may be nil)
//
// Returns:
//   - ResizeHandler: the handler
func NewResizeHandler(s scene.Scene, cam camera.Camera, r SceneRenderer, controller ViewportSizer) ResizeHandler {
	if s == nil || cam == nil || r == nil {
		panic("engine: resize handler needs a scene, camera and renderer")
	}
	return &resizeHandler{
		mu:         &sync.Mutex{},
		scene:      s,
		camera:     cam,
		renderer:   r,
		controller: controller,
	}
}

func (h *resizeHandler) Handle(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.camera.SetAspect(float32(width) / float32(height))
	h.camera.UpdateProjectionMatrix()

	if err := h.renderer.Resize(width, height); err != nil {
		return err
	}
	if h.controller != nil {
		h.controller.SetViewportSize(width, height)
	}
	if err := h.renderer.Render(h.scene, h.camera); err != nil {
		return fmt.Errorf("failed to draw after resize: %w", err)
	}
	return nil
}
