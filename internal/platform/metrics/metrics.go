package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps coarse process-wide counters. It is safe for
// concurrent use and cheap enough to sit on the hot request path.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	clientErrors    uint64
	rateLimited     uint64
	totalDurationMs uint64

	searchesRun        uint64
	verificationWrites uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.errorRequests, 1)
	case status == 429:
		atomic.AddUint64(&c.rateLimited, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordSearch counts one candidate search evaluation.
func (c *Collector) RecordSearch() {
	atomic.AddUint64(&c.searchesRun, 1)
}

// RecordVerificationWrite counts one verification state mutation.
func (c *Collector) RecordVerificationWrite() {
	atomic.AddUint64(&c.verificationWrites, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	clientErrs := atomic.LoadUint64(&c.clientErrors)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        errs,
		"clientErrorsTotal":  clientErrs,
		"rateLimitedTotal":   limited,
		"avgDurationMs":      avg,
		"totalDurationMs":    totalMs,
		"searchesTotal":      atomic.LoadUint64(&c.searchesRun),
		"verificationsTotal": atomic.LoadUint64(&c.verificationWrites),
	}
}
