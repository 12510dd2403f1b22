package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeBackend records every call the renderer makes so tests can run without a GPU.
type fakeBackend struct {
	configured  [][2]int
	presentMode *PresentMode
	uploads     map[model.Model]int
	released    []model.Model
	begins      int
	ends        int
	presents    int
	lastClear   common.Color
	lastFrame   []byte
	beginErr     error
	uploadErr    error
	configureErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{uploads: make(map[model.Model]int)}
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	if f.configureErr != nil {
		return f.configureErr
	}
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = &mode }

func (f *fakeBackend) UploadModel(m model.Model) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads[m]++
	return nil
}

func (f *fakeBackend) ReleaseModel(m model.Model) { f.released = append(f.released, m) }

func (f *fakeBackend) BeginFrame(clear common.Color, frameUniform []byte) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.begins++
	f.lastClear = clear
	f.lastFrame = frameUniform
	return nil
}

func (f *fakeBackend) DrawModel(m model.Model) int { return len(m.Meshes()) }

func (f *fakeBackend) EndFrame() error {
	f.ends++
	return nil
}

func (f *fakeBackend) Present() { f.presents++ }

func (f *fakeBackend) Release() {}

func newTestRenderer(t *testing.T, backend *fakeBackend, options ...RendererBuilderOption) *renderer {
	t.Helper()
	r := newRenderer(options...)
	if err := r.attach(backend, 800, 600); err != nil {
		t.Fatalf("attach() error = %v", err)
	}
	return r
}

func triangleModel(name string) model.Model {
	return model.NewModel(name, model.WithMeshes(&model.Mesh{
		Name:     "tri",
		Vertices: make([]model.GPUVertex, 3),
		Indices:  []uint32{0, 1, 2},
	}))
}

func TestRenderDrawsOncePerCall(t *testing.T) {
	backend := newFakeBackend()
	r := newTestRenderer(t, backend)

	bg := common.ColorFromRGB8(100, 250, 0)
	s := scene.NewScene("viewer", scene.WithBackground(bg))
	light.AddRig(s)
	m := triangleModel("tri")
	s.Add(m)
	cam := camera.NewViewerCamera(800, 600)

	const frames = 5
	for i := 0; i < frames; i++ {
		if err := r.Render(s, cam); err != nil {
			t.Fatalf("Render() frame %d error = %v", i, err)
		}
	}

	if got := r.DrawCount(); got != frames {
		t.Errorf("DrawCount() = %d, want %d", got, frames)
	}
	if backend.begins != frames || backend.ends != frames || backend.presents != frames {
		t.Errorf("begin/end/present = %d/%d/%d, want %d each", backend.begins, backend.ends, backend.presents, frames)
	}
	if got := backend.uploads[m]; got != 1 {
		t.Errorf("model uploaded %d times, want 1", got)
	}
	if got := r.MeshCount(); got != 1 {
		t.Errorf("MeshCount() = %d, want 1", got)
	}
	if backend.lastClear != bg {
		t.Errorf("clear color = %+v, want %+v", backend.lastClear, bg)
	}
	if got := len(backend.lastFrame); got != 224 {
		t.Fatalf("frame uniform length = %d, want 224", got)
	}
	if got := binary.LittleEndian.Uint32(backend.lastFrame[76:]); got != 4 {
		t.Errorf("frame light count = %d, want 4", got)
	}
}

func TestRenderBeginFrameError(t *testing.T) {
	backend := newFakeBackend()
	backend.beginErr = errors.New("surface lost")
	r := newTestRenderer(t, backend)

	err := r.Render(scene.NewScene("viewer"), camera.NewViewerCamera(800, 600))
	if !errors.Is(err, backend.beginErr) {
		t.Fatalf("Render() error = %v, want wrapped %v", err, backend.beginErr)
	}
	if got := r.DrawCount(); got != 0 {
		t.Errorf("DrawCount() = %d, want 0", got)
	}
	if backend.ends != 0 || backend.presents != 0 {
		t.Error("expected no EndFrame or Present after a failed BeginFrame")
	}
}

func TestRenderUploadErrorRetriesNextFrame(t *testing.T) {
	backend := newFakeBackend()
	backend.uploadErr = errors.New("out of memory")
	r := newTestRenderer(t, backend)

	s := scene.NewScene("viewer")
	m := triangleModel("tri")
	s.Add(m)
	cam := camera.NewViewerCamera(800, 600)

	if err := r.Render(s, cam); !errors.Is(err, backend.uploadErr) {
		t.Fatalf("Render() error = %v, want wrapped %v", err, backend.uploadErr)
	}

	backend.uploadErr = nil
	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := backend.uploads[m]; got != 1 {
		t.Errorf("model uploaded %d times, want 1", got)
	}
}

func TestRenderReleasesRemovedModels(t *testing.T) {
	backend := newFakeBackend()
	r := newTestRenderer(t, backend)

	s := scene.NewScene("viewer")
	m := triangleModel("tri")
	s.Add(m)
	cam := camera.NewViewerCamera(800, 600)

	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	s.Remove(m)
	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(backend.released) != 1 || backend.released[0] != m {
		t.Errorf("released = %v, want [%v]", backend.released, m)
	}
}

func TestRenderNilArguments(t *testing.T) {
	r := newTestRenderer(t, newFakeBackend())
	if err := r.Render(nil, camera.NewViewerCamera(1, 1)); err == nil {
		t.Error("expected an error for a nil scene")
	}
	if err := r.Render(scene.NewScene("viewer"), nil); err == nil {
		t.Error("expected an error for a nil camera")
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
		wantConfigure int
	}{
		{"grow", 1920, 1080, 1920, 1080, 2},
		{"zero width ignored", 0, 600, 800, 600, 1},
		{"zero height ignored", 800, 0, 800, 600, 1},
		{"negative ignored", -1, -1, 800, 600, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			r := newTestRenderer(t, backend)

			if err := r.Resize(tt.width, tt.height); err != nil {
				t.Fatalf("Resize() error = %v", err)
			}
			w, h := r.Size()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			if got := len(backend.configured); got != tt.wantConfigure {
				t.Errorf("ConfigureSurface calls = %d, want %d", got, tt.wantConfigure)
			}
		})
	}
}

func TestSetPresentMode(t *testing.T) {
	backend := newFakeBackend()
	r := newTestRenderer(t, backend)

	if err := r.SetPresentMode(PresentModeVSync); err != nil {
		t.Fatalf("SetPresentMode() error = %v", err)
	}
	if backend.presentMode == nil || *backend.presentMode != PresentModeVSync {
		t.Fatalf("backend present mode = %v, want PresentModeVSync", backend.presentMode)
	}
	if got := backend.configured[len(backend.configured)-1]; got != [2]int{800, 600} {
		t.Errorf("reconfigured to %v, want [800 600]", got)
	}

	boom := errors.New("surface lost")
	backend.configureErr = boom
	if err := r.SetPresentMode(PresentModeUncapped); !errors.Is(err, boom) {
		t.Errorf("SetPresentMode() error = %v, want %v", err, boom)
	}
}

func TestAttachAppliesOptions(t *testing.T) {
	backend := newFakeBackend()
	newTestRenderer(t, backend, WithPresentMode(PresentModeVSync))

	if backend.presentMode == nil || *backend.presentMode != PresentModeVSync {
		t.Errorf("present mode = %v, want VSync", backend.presentMode)
	}
	if len(backend.configured) != 1 || backend.configured[0] != [2]int{800, 600} {
		t.Errorf("configured = %v, want [[800 600]]", backend.configured)
	}

	if err := newRenderer().attach(newFakeBackend(), 0, 0); err == nil {
		t.Error("expected attach to reject a zero-sized framebuffer")
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := newRenderer()
	if r.pendingMSAA == nil || *r.pendingMSAA != MSAA4x {
		t.Errorf("default MSAA = %v, want MSAA4x", r.pendingMSAA)
	}

	r = newRenderer(WithMSAA(MSAAOff), WithForceSoftwareRenderer(true), WithAmbient(common.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}))
	if *r.pendingMSAA != MSAAOff || !r.forceFallbackAdapter || r.ambient.R != 0.1 {
		t.Errorf("options not applied: msaa=%v software=%v ambient=%+v", *r.pendingMSAA, r.forceFallbackAdapter, r.ambient)
	}
}

func TestFrameUniform(t *testing.T) {
	cam := camera.NewViewerCamera(800, 600)
	lights := []light.Light{
		light.NewDirectionalLight("on", light.WithPosition(mgl32.Vec3{0, 10, 0})),
		light.NewDirectionalLight("off", light.WithEnabled(false)),
	}
	f := NewFrameUniform(cam, lights, common.Color{R: 0.2, G: 0.3, B: 0.4, A: 1})

	if got := f.Size(); got != 224 {
		t.Errorf("Size() = %d, want 224", got)
	}
	if f.LightCount != 1 {
		t.Errorf("LightCount = %d, want 1", f.LightCount)
	}

	buf := f.Marshal()
	if len(buf) != f.Size() {
		t.Fatalf("Marshal() length = %d, want %d", len(buf), f.Size())
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])); got != camera.DefaultPosition.Y() {
		t.Errorf("camera y = %v, want %v", got, camera.DefaultPosition.Y())
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[84:])); got != 0.3 {
		t.Errorf("ambient g = %v, want 0.3", got)
	}
	// First light's direction y at offset 96+4.
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[100:])); got != -1 {
		t.Errorf("light direction y = %v, want -1", got)
	}
	vp := cam.ViewProjectionMatrix()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])); got != vp[0] {
		t.Errorf("viewProj[0] = %v, want %v", got, vp[0])
	}
}
