package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
)

var (
	// ErrRenderLoopRunning is returned by Run when the loop is already running.
	ErrRenderLoopRunning = errors.New("engine: render loop already running")

	// ErrRenderLoopStopped reports work that arrived after the loop stopped.
	ErrRenderLoopStopped = errors.New("engine: render loop stopped")
)

// FrameSource is the host's per-frame primitive. NextFrame polls pending events and reports
// whether another frame should be drawn.
type FrameSource interface {
	NextFrame() bool
}

// Updater advances per-frame state before drawing. The orbit controller is one.
type Updater interface {
	Update() bool
}

// Drawer issues one draw call.
type Drawer interface {
	Draw() error
}

// DrawerFunc adapts a plain function to the Drawer interface.
type DrawerFunc func() error

// Draw calls f.
func (f DrawerFunc) Draw() error {
	return f()
}

// RenderLoop drives the render timeline: each iteration polls the frame source, runs posted
// completions, advances the updater and issues exactly one draw call.
type RenderLoop interface {
	// Run blocks until the frame source reports the window closed, Stop is called, or ctx is
	// cancelled. Must be called from the goroutine that owns the window.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, ErrRenderLoopRunning if already running, nil otherwise
	Run(ctx context.Context) error

	// Stop ends the loop after the current iteration. Safe to call more than once and from any goroutine.
	Stop()

	// Post queues fn to run on the render timeline at the top of the next frame.
	// Blocks while the queue is full. Completions still queued when Run returns are run
	// before it returns, so every accepted completion runs exactly once.
	//
	// Parameters:
	//   - fn: the completion to run
	//
	// Returns:
	//   - bool: false if the loop was stopped or Run has already returned
	Post(fn func()) bool

	// Frames returns the number of iterations completed so far.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64
}

type renderLoop struct {
	frames  FrameSource
	updater Updater
	drawer  Drawer

	posted      chan func()
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	// postMu guards closed; Post holds it shared while sending.
	postMu *sync.RWMutex
	closed bool

	running    atomic.Bool
	frameCount atomic.Uint64

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameLimit time.Duration // minimum frame duration; 0 = uncapped
	queueSize  int
}

var _ RenderLoop = &renderLoop{}

// NewRenderLoop creates a RenderLoop over the given frame source and drawer.
//
// Parameters:
//   - frames: the host frame primitive
//   - drawer: issues the per-frame draw call
//   - options: functional options to configure the loop
//
// Returns:
//   - RenderLoop: the configured loop (not yet running)
func NewRenderLoop(frames FrameSource, drawer Drawer, options ...RenderLoopBuilderOption) RenderLoop {
	if frames == nil || drawer == nil {
		panic("engine: render loop needs a frame source and a drawer")
	}
	l := &renderLoop{
		frames:      frames,
		drawer:      drawer,
		quitChannel: make(chan struct{}),
		postMu:      &sync.RWMutex{},
		queueSize:   16,
	}
	for _, opt := range options {
		opt(l)
	}
	l.posted = make(chan func(), l.queueSize)
	if l.profilingEnabled && l.profiler == nil {
		l.profiler = profiler.NewProfiler(profiler.WithDrawCounter(l.Frames))
	}
	return l
}

func (l *renderLoop) Run(ctx context.Context) (err error) {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRenderLoopRunning
	}
	defer l.running.Store(false)
	defer l.finish()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[RenderLoop] recovered from panic: %v", r)
			l.Stop()
			err = fmt.Errorf("render loop panic: %v", r)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quitChannel:
			return nil
		default:
		}

		frameStart := time.Now()
		if !l.frames.NextFrame() {
			return nil
		}

		l.drainPosted()

		if l.updater != nil {
			l.updater.Update()
		}
		if err := l.drawer.Draw(); err != nil {
			log.Printf("[RenderLoop] draw failed: %v", err)
		}
		l.frameCount.Add(1)

		if l.profilingEnabled && l.profiler != nil {
			l.profiler.Tick()
		}

		if l.frameLimit > 0 {
			if remaining := l.frameLimit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// drainPosted runs every completion queued so far without blocking.
func (l *renderLoop) drainPosted() {
	for {
		select {
		case fn := <-l.posted:
			fn()
		default:
			return
		}
	}
}

// finish stops the loop, refuses further posts and runs whatever was accepted before that.
func (l *renderLoop) finish() {
	l.Stop()
	l.postMu.Lock()
	l.closed = true
	l.postMu.Unlock()

	for {
		select {
		case fn := <-l.posted:
			l.runPosted(fn)
		default:
			return
		}
	}
}

func (l *renderLoop) runPosted(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[RenderLoop] posted completion panicked after shutdown: %v", r)
		}
	}()
	fn()
}

func (l *renderLoop) Stop() {
	l.quitOnce.Do(func() {
		close(l.quitChannel)
	})
}

func (l *renderLoop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	l.postMu.RLock()
	defer l.postMu.RUnlock()
	if l.closed {
		return false
	}
	select {
	case <-l.quitChannel:
		return false
	default:
	}
	select {
	case l.posted <- fn:
		return true
	case <-l.quitChannel:
		return false
	}
}

func (l *renderLoop) Frames() uint64 {
	return l.frameCount.Load()
}
