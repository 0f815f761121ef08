package slo

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// DefaultWindow is the number of recent requests a Tracker keeps.
const DefaultWindow = 4096

type sample struct {
	latency time.Duration
	failed  bool
}

// Tracker keeps a ring of the most recent request outcomes.
// It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	samples []sample
	next    int
	full    bool
}

// Default is the tracker fed by the HTTP metrics middleware.
var Default = NewTracker(DefaultWindow)

// NewTracker returns a tracker holding at most size samples.
func NewTracker(size int) *Tracker {
	if size <= 0 {
		size = DefaultWindow
	}
	return &Tracker{samples: make([]sample, size)}
}

// Observe records one answered request. Statuses of 500 and above count as failures.
func (t *Tracker) Observe(status int, latency time.Duration) {
	t.mu.Lock()
	t.samples[t.next] = sample{latency: latency, failed: status >= 500}
	t.next++
	if t.next == len(t.samples) {
		t.next = 0
		t.full = true
	}
	t.mu.Unlock()
}

// Report is a snapshot of the indicators over the window.
type Report struct {
	Requests     int
	Availability float64
	ErrorRate    float64
	P95          time.Duration
	P99          time.Duration
}

// Met reports whether every indicator is within its target.
// An empty window meets the targets.
func (r Report) Met() bool {
	if r.Requests == 0 {
		return true
	}
	return r.Availability >= AvailabilityTarget &&
		r.ErrorRate <= ErrorRateTarget &&
		r.P95.Seconds() <= LatencyP95Target &&
		r.P99.Seconds() <= LatencyP99Target
}

// Snapshot computes the indicators over the current window.
func (t *Tracker) Snapshot() Report {
	t.mu.Lock()
	n := t.next
	if t.full {
		n = len(t.samples)
	}
	window := make([]sample, n)
	copy(window, t.samples[:n])
	t.mu.Unlock()

	if n == 0 {
		return Report{Availability: 1}
	}

	failed := 0
	latencies := make([]time.Duration, n)
	for i, s := range window {
		latencies[i] = s.latency
		if s.failed {
			failed++
		}
	}
	slices.Sort(latencies)

	rate := float64(failed) / float64(n)
	return Report{
		Requests:     n,
		Availability: 1 - rate,
		ErrorRate:    rate,
		P95:          percentile(latencies, 0.95),
		P99:          percentile(latencies, 0.99),
	}
}

// percentile uses the nearest-rank method on sorted latencies.
func percentile(sorted []time.Duration, p float64) time.Duration {
	rank := int(p*float64(len(sorted))+0.999999) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

// Run publishes a snapshot every interval until ctx is done.
// A window that misses its targets is logged once per interval.
func (t *Tracker) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r := t.Snapshot()
			publish(r)
			if !r.Met() {
				logger.Warn("slo targets missed",
					slog.Int("requests", r.Requests),
					slog.Float64("availability", r.Availability),
					slog.Duration("p95", r.P95),
					slog.Duration("p99", r.P99))
			}
		}
	}
}
