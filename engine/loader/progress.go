package loader

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressFunc receives the running byte count of an asset fetch. total is -1 when the size is unknown.
type ProgressFunc func(p string, loaded, total int64)

// Percent converts a byte count into a whole percentage in [0, 100]. Returns -1 when total is unknown.
//
// Parameters:
//   - loaded: bytes read so far
//   - total: expected size in bytes
//
// Returns:
//   - int: the whole percentage, or -1
func Percent(loaded, total int64) int {
	if total <= 0 {
		return -1
	}
	pct := loaded * 100 / total
	return int(max(0, min(pct, 100)))
}

// fetchProgress is the last logged state of one path.
type fetchProgress struct {
	pct    int
	loaded int64
}

// LogProgress returns a ProgressFunc that writes one "[Loader] <path>: N% loaded" line each
// time the whole percentage advances. Fetches of unknown size are not logged. A path's state
// is dropped once it reaches 100% and reset when its byte count starts over, so a retried
// fetch is logged again. The returned func is safe for concurrent use.
//
// Returns:
//   - ProgressFunc: the logging callback
func LogProgress() ProgressFunc {
	var mu sync.Mutex
	last := make(map[string]fetchProgress)
	return func(p string, loaded, total int64) {
		pct := Percent(loaded, total)
		if pct < 0 {
			return
		}

		mu.Lock()
		prev, seen := last[p]
		if seen && loaded <= prev.loaded {
			seen = false
		}
		if seen && pct <= prev.pct {
			last[p] = fetchProgress{pct: prev.pct, loaded: loaded}
			mu.Unlock()
			return
		}
		if pct >= 100 {
			delete(last, p)
		} else {
			last[p] = fetchProgress{pct: pct, loaded: loaded}
		}
		mu.Unlock()

		log.Printf("[Loader] %s: %d%% loaded", p, pct)
	}
}

// progressReader reports the running byte count of the wrapped reader after every Read.
type progressReader struct {
	r      io.Reader
	p      string
	loaded int64
	total  int64
	notify ProgressFunc
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	if n > 0 {
		pr.loaded += int64(n)
		pr.notify(pr.p, pr.loaded, pr.total)
	}
	return n, err
}

// trackProgress wraps r so that reads are reported to notify and, when bar is non-nil, drawn
// as a terminal progress bar. The returned finish func completes the bar.
func trackProgress(r io.Reader, p string, total int64, notify ProgressFunc, bar io.Writer) (io.Reader, func()) {
	finish := func() {}
	if bar != nil {
		pb := progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(bar),
			progressbar.OptionSetDescription(p),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		r = io.TeeReader(r, pb)
		finish = func() {
			_ = pb.Finish()
		}
	}
	if notify != nil {
		r = &progressReader{r: r, p: p, total: total, notify: notify}
	}
	return r, finish
}
