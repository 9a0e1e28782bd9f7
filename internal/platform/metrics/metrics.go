package metrics

import (
	"sync/atomic"
	"time"
)

// Collector accumulates request counters without locks so the logging
// middleware can record from any goroutine.
type Collector struct {
	totalRequests    uint64
	errorRequests    uint64
	conflictRequests uint64
	totalDurationMs  uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 409 {
		atomic.AddUint64(&c.conflictRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	conflicts := atomic.LoadUint64(&c.conflictRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"totalRequests":     total,
		"errorRequests":     errs,
		"conflictRequests":  conflicts,
		"avgDurationMillis": avg,
	}
}
