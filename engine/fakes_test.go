package engine

import (
	"context"
	"io"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// fakeWindow serves a fixed number of frames and records the callbacks bound to it.
type fakeWindow struct {
	mu     sync.Mutex
	frames int
	polled int
	width  int
	height int

	onFrame       func(n int)
	onResize      func(width, height int)
	onMouseButton func(button common.MouseButton, pressed bool, x, y float64)
	onCursorMove  func(x, y float64)
	onScroll      func(yOffset float64)
	onKey         func(key int, pressed bool)
}

func newFakeWindow(frames int) *fakeWindow {
	return &fakeWindow{frames: frames, width: 800, height: 600}
}

func (w *fakeWindow) NextFrame() bool {
	w.mu.Lock()
	if w.polled >= w.frames {
		w.mu.Unlock()
		return false
	}
	w.polled++
	n := w.polled
	hook := w.onFrame
	w.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return true
}

func (w *fakeWindow) Width() int  { return w.width }
func (w *fakeWindow) Height() int { return w.height }

func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }

func (w *fakeWindow) SetMouseButtonCallback(cb func(button common.MouseButton, pressed bool, x, y float64)) {
	w.onMouseButton = cb
}

func (w *fakeWindow) SetCursorMoveCallback(cb func(x, y float64))   { w.onCursorMove = cb }
func (w *fakeWindow) SetScrollCallback(cb func(yOffset float64))    { w.onScroll = cb }
func (w *fakeWindow) SetKeyCallback(cb func(key int, pressed bool)) { w.onKey = cb }

// fakeRenderer counts draw calls and records surface sizes.
type fakeRenderer struct {
	mu         sync.Mutex
	renders    int
	resizes    [][2]int
	lastAspect float32
	lastCount  int
	resizeErr  error
	renderErr  error
}

func (r *fakeRenderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderErr != nil {
		return r.renderErr
	}
	r.renders++
	r.lastAspect = cam.Aspect()
	r.lastCount = s.Count()
	return nil
}

func (r *fakeRenderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resizeErr != nil {
		return r.resizeErr
	}
	r.resizes = append(r.resizes, [2]int{width, height})
	return nil
}

func (r *fakeRenderer) DrawCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(r.renders)
}

func (r *fakeRenderer) renderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

// recordingSource wraps an AssetSource and records every requested path.
type recordingSource struct {
	loader.AssetSource
	mu     sync.Mutex
	opened []string
}

func (s *recordingSource) Open(ctx context.Context, p string) (io.ReadCloser, int64, error) {
	s.mu.Lock()
	s.opened = append(s.opened, p)
	s.mu.Unlock()
	return s.AssetSource.Open(ctx, p)
}

func (s *recordingSource) requested(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.opened {
		if o == p {
			return true
		}
	}
	return false
}
