package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged. Non-positive values keep the default.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithDrawCounter sets the function read each interval to report draw calls.
// The function must return a monotonically increasing total.
//
// Parameters:
//   - counter: returns the total number of draw calls issued so far
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithDrawCounter(counter func() uint64) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.drawCounter = counter
	}
}

// withClock replaces the time source.
func withClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
