package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width     int
	height    int
	ambient   common.Color
	drawCount uint64
	meshCount int
	uploaded  map[model.Model]struct{}

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer draws a scene from a camera's point of view onto the window surface.
//
// The Renderer owns the GPU copies of scene resources. Models found in the scene are
// uploaded the first time they are drawn and released once they leave the scene.
type Renderer interface {
	// Render draws one frame: it clears to the scene background, uploads the frame uniform
	// and any not-yet-seen model, issues one indexed draw per mesh, then submits and presents.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: an error if a model upload failed or the surface texture could not be acquired
	Render(s scene.Scene, cam camera.Camera) error

	// Resize reconfigures the surface for a new framebuffer size.
	// Sizes with a zero or negative dimension are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface attachments could not be recreated
	Resize(width, height int) error

	// Size returns the current surface size in pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)

	// SetPresentMode changes the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	SetPresentMode(mode PresentMode) error

	// DrawCount returns the number of frames successfully rendered.
	//
	// Returns:
	//   - uint64: the frame count
	DrawCount() uint64

	// MeshCount returns the number of meshes drawn in the last rendered frame.
	//
	// Returns:
	//   - int: the mesh count
	MeshCount() int

	// Release frees every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to a new WebGPU surface on the given window,
// configured to the window's framebuffer size.
//
// Parameters:
//   - win: the window to render into
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if the surface, adapter or device could not be created
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	if win == nil {
		panic("renderer: window is nil")
	}

	r := newRenderer(options...)
	var backend RendererBackend
	var err error
	switch r.backendType {
	case BackendTypeWGPU:
		backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, common.Coalesce(*r.pendingMSAA, MSAA4x))
	default:
		err = fmt.Errorf("unsupported backend type %d", r.backendType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer backend: %w", err)
	}

	if err := r.attach(backend, win.Width(), win.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

// newRenderer applies defaults and options without touching the GPU.
func newRenderer(options ...RendererBuilderOption) *renderer {
	msaa := MSAA4x
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: BackendTypeWGPU,
		uploaded:    make(map[model.Model]struct{}),
		pendingMSAA: &msaa,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach binds a backend to the renderer and configures the surface to the initial size.
func (r *renderer) attach(backend RendererBackend, width, height int) error {
	r.backend = backend
	if r.pendingPresentMode != nil {
		backend.SetPresentMode(*r.pendingPresentMode)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	if err := backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface: %w", err)
	}
	r.width, r.height = width, height
	return nil
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	if s == nil || cam == nil {
		return errors.New("renderer: scene and camera are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var models []model.Model
	for _, n := range s.ChildrenOfKind(scene.NodeKindModel) {
		if m, ok := n.(model.Model); ok {
			models = append(models, m)
		}
	}
	r.syncModels(models)
	for _, m := range models {
		if _, ok := r.uploaded[m]; ok {
			continue
		}
		if err := r.backend.UploadModel(m); err != nil {
			return fmt.Errorf("failed to upload model %s: %w", m.Name(), err)
		}
		r.uploaded[m] = struct{}{}
	}

	var lights []light.Light
	for _, n := range s.ChildrenOfKind(scene.NodeKindLight) {
		if l, ok := n.(light.Light); ok {
			lights = append(lights, l)
		}
	}
	frame := NewFrameUniform(cam, lights, r.ambient)

	if err := r.backend.BeginFrame(s.Background(), frame.Marshal()); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	meshes := 0
	for _, m := range models {
		meshes += r.backend.DrawModel(m)
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("failed to end frame: %w", err)
	}
	r.backend.Present()

	r.drawCount++
	r.meshCount = meshes
	return nil
}

// syncModels releases the GPU copies of models that are no longer in the scene. Caller holds r.mu.
func (r *renderer) syncModels(current []model.Model) {
	if len(r.uploaded) == 0 {
		return
	}
	live := make(map[model.Model]struct{}, len(current))
	for _, m := range current {
		live[m] = struct{}{}
	}
	for m := range r.uploaded {
		if _, ok := live[m]; !ok {
			r.backend.ReleaseModel(m)
			delete(r.uploaded, m)
		}
	}
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to resize surface to %dx%d: %w", width, height, err)
	}
	r.width, r.height = width, height
	return nil
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.SetPresentMode(mode)
	if r.width <= 0 || r.height <= 0 {
		return nil
	}
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		log.Printf("[Renderer] failed to apply present mode %d: %v", mode, err)
		return fmt.Errorf("failed to reconfigure surface for present mode %d: %w", mode, err)
	}
	return nil
}

func (r *renderer) DrawCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawCount
}

func (r *renderer) MeshCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meshCount
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend == nil {
		return
	}
	r.backend.Release()
	r.backend = nil
	r.uploaded = make(map[model.Model]struct{})
}
