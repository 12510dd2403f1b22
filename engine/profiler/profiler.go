package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Report is one interval's worth of statistics.
type Report struct {
	FPS            float64
	Draws          uint64 // draw calls issued during the interval
	HeapMB         float64
	AllocRateMB    float64
	SysMB          float64
	GCCount        uint32
	LastPauseMicro uint64
	MaxPauseMicro  uint64
}

// Profiler tracks frame rate, draw count and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	mu *sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time

	drawCounter func() uint64
	lastDraws   uint64

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	reports    int
	lastReport Report
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options applied after defaults
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	r := Report{FPS: float64(p.frameCount) / elapsed.Seconds()}
	if p.drawCounter != nil {
		draws := p.drawCounter()
		r.Draws = draws - p.lastDraws
		p.lastDraws = draws
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc only grows and tracks churn, Sys is the process footprint.
	r.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	r.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	r.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	r.GCCount = p.memStats.NumGC
	if r.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		r.LastPauseMicro = p.memStats.PauseNs[(r.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if r.GCCount-startIdx > 256 {
			startIdx = r.GCCount - 256
		}
		for i := startIdx; i < r.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > r.MaxPauseMicro {
				r.MaxPauseMicro = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Draws: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		r.FPS, r.Draws, r.HeapMB, r.AllocRateMB, r.GCCount, r.LastPauseMicro, r.MaxPauseMicro, r.SysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.reports++
	p.lastReport = r
	return true
}

// LastReport returns the statistics logged by the most recent reporting Tick.
//
// Returns:
//   - Report: the last report
//   - bool: false if nothing has been reported yet
func (p *Profiler) LastReport() (Report, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastReport, p.reports > 0
}
