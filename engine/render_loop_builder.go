package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
)

// RenderLoopBuilderOption is a functional option for configuring a RenderLoop.
type RenderLoopBuilderOption func(*renderLoop)

// WithUpdater sets the state advanced once per frame before drawing.
//
// Parameters:
//   - u: the updater (typically the orbit controller)
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithUpdater(u Updater) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.updater = u
	}
}

// WithFrameLimit caps the loop to the given frames per second. Values <= 0 leave it uncapped.
//
// Parameters:
//   - fps: the maximum frame rate
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithFrameLimit(fps float64) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		if fps <= 0 {
			l.frameLimit = 0
			return
		}
		l.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithProfiling enables or disables per-second performance logging.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithProfiling(enabled bool) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.profilingEnabled = enabled
	}
}

// WithProfiler enables profiling with a preconfigured Profiler.
//
// Parameters:
//   - p: the profiler ticked once per frame
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.profiler = p
		l.profilingEnabled = p != nil
	}
}

// WithPostQueueSize sets how many posted completions can wait for the next frame.
//
// Parameters:
//   - n: the queue capacity (minimum 1)
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithPostQueueSize(n int) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.queueSize = max(n, 1)
	}
}
