package renderer

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4; higher values are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8x multisample anti-aliasing. Adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16x multisample anti-aliasing. Adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// wgpuRendererBackend is the set of GPU operations the Renderer drives each frame.
type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the surface and its MSAA and depth attachments.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if an attachment could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode used by the next ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// UploadModel creates vertex, index, material and texture resources for every mesh of m.
	//
	// Parameters:
	//   - m: the model to upload
	//
	// Returns:
	//   - error: an error if any GPU resource could not be created
	UploadModel(m model.Model) error

	// ReleaseModel frees the GPU resources created by UploadModel. Unknown models are ignored.
	//
	// Parameters:
	//   - m: the model to release
	ReleaseModel(m model.Model)

	// BeginFrame acquires the next surface texture, writes the frame uniform and begins the
	// main render pass cleared to the given color.
	//
	// Parameters:
	//   - clear: the clear color
	//   - frameUniform: the marshaled FrameUniform
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame(clear common.Color, frameUniform []byte) error

	// DrawModel encodes one indexed draw per mesh of an uploaded model.
	//
	// Parameters:
	//   - m: the model to draw
	//
	// Returns:
	//   - int: the number of meshes drawn
	DrawModel(m model.Model) int

	// EndFrame ends the render pass and submits the command buffer.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the acquired surface texture and releases it.
	Present()

	// Release frees every GPU resource owned by the backend.
	Release()
}
