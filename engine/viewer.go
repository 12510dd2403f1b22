package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

var (
	// ErrModelLoadInFlight is returned by LoadModel while a previous load has not finished.
	ErrModelLoadInFlight = errors.New("engine: model load already in flight")

	// ErrModelLoaded is returned by LoadModel once a model has been attached to the scene.
	ErrModelLoaded = errors.New("engine: model already loaded")

	// ErrViewerClosed is returned by LoadModel after Close, and reported to the load
	// callback for a load that Close cancelled before it started.
	ErrViewerClosed = errors.New("engine: viewer closed")
)

// DefaultBackground is the viewer's clear color: (100, 250, 0) given as unit floats,
// which saturates to yellow.
var DefaultBackground = common.Color{R: 1, G: 1, B: 0, A: 1}

const (
	loadIdle int32 = iota
	loadInFlight
	loadDone
)

// ViewerWindow is the part of the window the viewer binds to.
type ViewerWindow interface {
	FrameSource
	Width() int
	Height() int
	SetResizeCallback(callback func(width, height int))
	SetMouseButtonCallback(callback func(button common.MouseButton, pressed bool, x, y float64))
	SetCursorMoveCallback(callback func(x, y float64))
	SetScrollCallback(callback func(yOffset float64))
	SetKeyCallback(callback func(key int, pressed bool))
}

// LoadCallback is notified once a model load finishes. On success it runs on the render
// timeline after the model is attached; on failure it runs on the load worker, or on the
// goroutine calling Close for a load that never started.
type LoadCallback func(m model.Model, err error)

// Viewer owns everything a single-model viewer needs: the scene, camera, lighting rig,
// orbit controller, render loop and resize handling.
type Viewer interface {
	// Scene returns the scene graph root.
	Scene() scene.Scene

	// Camera returns the viewer camera.
	Camera() camera.Camera

	// Controller returns the orbit controller bound to the window input.
	Controller() camera.OrbitController

	// Lights returns the lights added by the lighting rig.
	Lights() []light.Light

	// Loop returns the render loop.
	Loop() RenderLoop

	// Model returns the attached model, or nil before a load completes.
	Model() model.Model

	// LoadModel starts the two-stage load of the named model on a worker goroutine.
	// The merged model is attached to the scene on the render timeline.
	//
	// Parameters:
	//   - ctx: cancels the asset fetch
	//   - name: the model name; "<name>.mtl" and "<name>.obj" are fetched
	//
	// Returns:
	//   - error: ErrModelLoadInFlight, ErrModelLoaded or ErrViewerClosed if the request is refused
	LoadModel(ctx context.Context, name string) error

	// WaitForLoad blocks until every started load has finished (successfully or not).
	// A successful load is only attached once the render loop runs its next frame.
	WaitForLoad()

	// Draw issues one draw call of the scene from the camera.
	//
	// Returns:
	//   - error: the renderer's error
	Draw() error

	// Run drives the render loop until the window closes, ctx is cancelled, or Stop is called.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: the loop's error
	Run(ctx context.Context) error

	// Stop ends the render loop.
	Stop()

	// Close stops the loop and the load workers and refuses further loads. A load that was
	// queued but not started is cancelled with ErrViewerClosed. The renderer is left to its owner.
	Close()
}

// loadTicket is claimed exactly once, either by the worker running the load or by Close.
type loadTicket struct {
	name    string
	claimed atomic.Bool
}

type viewer struct {
	mu *sync.RWMutex

	window     ViewerWindow
	renderer   SceneRenderer
	loader     loader.Loader
	scene      scene.Scene
	camera     camera.Camera
	controller camera.OrbitController
	lights     []light.Light
	loop       RenderLoop
	resize     ResizeHandler
	pool       worker.DynamicWorkerPool

	loadState  atomic.Int32
	loads      sync.WaitGroup
	taskID     atomic.Int64
	attachOnce sync.Once
	model      model.Model
	closed     bool
	pending    *loadTicket

	// Pre-creation config collected from builder options
	sceneName         string
	background        common.Color
	cameraOptions     []camera.CameraBuilderOption
	rigOptions        []light.RigBuilderOption
	controllerOptions []camera.OrbitControllerBuilderOption
	loopOptions       []RenderLoopBuilderOption
	profilingEnabled  bool
	onLoad            LoadCallback
	loadWorkers       int
}

var _ Viewer = &viewer{}

// NewViewer builds the scene, camera, lighting rig and orbit controller, binds window input
// and resize events, and prepares the render loop.
//
// Parameters:
//   - win: the window providing frames and input
//   - r: the renderer bound to the window surface
//   - ld: the model loader
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the configured viewer (not yet running)
func NewViewer(win ViewerWindow, r SceneRenderer, ld loader.Loader, options ...ViewerBuilderOption) Viewer {
	if win == nil || r == nil || ld == nil {
		panic("engine: viewer needs a window, renderer and loader")
	}

	v := &viewer{
		mu:          &sync.RWMutex{},
		window:      win,
		renderer:    r,
		loader:      ld,
		sceneName:   "viewer",
		background:  DefaultBackground,
		loadWorkers: 1,
	}
	for _, opt := range options {
		opt(v)
	}

	width, height := win.Width(), win.Height()
	v.scene = scene.NewScene(v.sceneName, scene.WithBackground(v.background))
	v.camera = camera.NewViewerCamera(width, height, v.cameraOptions...)
	v.lights = light.AddRig(v.scene, v.rigOptions...)
	v.controller = camera.NewOrbitController(v.camera,
		append([]camera.OrbitControllerBuilderOption{camera.WithViewportSize(width, height)}, v.controllerOptions...)...,
	)

	win.SetMouseButtonCallback(v.controller.HandleMouseButton)
	win.SetCursorMoveCallback(v.controller.HandleCursorMove)
	win.SetScrollCallback(v.controller.HandleScroll)
	win.SetKeyCallback(v.controller.HandleKey)

	v.resize = NewResizeHandler(v.scene, v.camera, r, v.controller)
	win.SetResizeCallback(func(width, height int) {
		if err := v.resize.Handle(width, height); err != nil {
			log.Printf("[Viewer] resize to %dx%d failed: %v", width, height, err)
		}
	})

	loopOptions := append([]RenderLoopBuilderOption{WithUpdater(v.controller)}, v.loopOptions...)
	if v.profilingEnabled {
		counter := func() uint64 { return v.loop.Frames() }
		if dc, ok := r.(interface{ DrawCount() uint64 }); ok {
			counter = dc.DrawCount
		}
		loopOptions = append(loopOptions, WithProfiler(profiler.NewProfiler(profiler.WithDrawCounter(counter))))
	}
	v.loop = NewRenderLoop(win, DrawerFunc(v.Draw), loopOptions...)
	v.pool = worker.NewDynamicWorkerPool(v.loadWorkers, 4, time.Second)

	return v
}

func (v *viewer) Scene() scene.Scene {
	return v.scene
}

func (v *viewer) Camera() camera.Camera {
	return v.camera
}

func (v *viewer) Controller() camera.OrbitController {
	return v.controller
}

func (v *viewer) Lights() []light.Light {
	out := make([]light.Light, len(v.lights))
	copy(out, v.lights)
	return out
}

func (v *viewer) Loop() RenderLoop {
	return v.loop
}

func (v *viewer) Model() model.Model {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.model
}

func (v *viewer) LoadModel(ctx context.Context, name string) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewerClosed
	}
	if !v.loadState.CompareAndSwap(loadIdle, loadInFlight) {
		v.mu.Unlock()
		if v.loadState.Load() == loadDone {
			return ErrModelLoaded
		}
		return ErrModelLoadInFlight
	}
	ticket := &loadTicket{name: name}
	v.pending = ticket
	v.loads.Add(1)
	v.mu.Unlock()

	log.Printf("[Viewer] loading model %s from %s", name, v.loader.Source())
	v.pool.SubmitTask(worker.Task{
		ID:      int(v.taskID.Add(1)),
		Payload: name,
		Do: func() (any, error) {
			if !ticket.claimed.CompareAndSwap(false, true) {
				return nil, ErrViewerClosed
			}
			defer v.loads.Done()

			m, err := v.loader.Load(ctx, name)
			if err != nil {
				log.Printf("[Viewer] failed to load model %s: %v", name, err)
				v.failLoad(err)
				return nil, err
			}

			if !v.loop.Post(func() { v.attach(m) }) {
				log.Printf("[Viewer] render loop stopped before model %s could be attached", name)
				v.failLoad(ErrRenderLoopStopped)
				return nil, ErrRenderLoopStopped
			}
			return m, nil
		},
	})
	return nil
}

// failLoad returns the viewer to idle and reports err to the load callback.
func (v *viewer) failLoad(err error) {
	v.loadState.Store(loadIdle)
	if v.onLoad != nil {
		v.onLoad(nil, err)
	}
}

// attach inserts the loaded model into the scene. Runs on the render timeline; repeated
// deliveries are ignored.
func (v *viewer) attach(m model.Model) {
	v.attachOnce.Do(func() {
		if !v.scene.Add(m) {
			log.Printf("[Viewer] model %s is already in the scene", m.Name())
		}
		v.mu.Lock()
		v.model = m
		v.mu.Unlock()
		v.loadState.Store(loadDone)

		b := m.Bounds()
		log.Printf("[Viewer] attached model %s: %d meshes, %d triangles, radius %.2f",
			m.Name(), len(m.Meshes()), m.TriangleCount(), b.Radius())
		if v.onLoad != nil {
			v.onLoad(m, nil)
		}
	})
}

func (v *viewer) WaitForLoad() {
	v.loads.Wait()
}

func (v *viewer) Draw() error {
	return v.renderer.Render(v.scene, v.camera)
}

func (v *viewer) Run(ctx context.Context) error {
	return v.loop.Run(ctx)
}

func (v *viewer) Stop() {
	v.loop.Stop()
}

func (v *viewer) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	ticket := v.pending
	v.mu.Unlock()

	v.loop.Stop()
	v.pool.Stop()

	// The pool drops queued tasks on Stop, so a load that never started is finished here.
	if ticket != nil && ticket.claimed.CompareAndSwap(false, true) {
		log.Printf("[Viewer] load of model %s cancelled by close", ticket.name)
		v.failLoad(ErrViewerClosed)
		v.loads.Done()
	}
}
