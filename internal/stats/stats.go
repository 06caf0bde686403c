// Package stats tracks request counters for the health endpoint.
package stats

import (
	"sort"
	"sync"
	"time"
)

// Tracker accumulates request statistics with thread-safe access.
type Tracker struct {
	mu sync.RWMutex

	total        int64
	clientErrors int64
	serverErrors int64

	// Ring buffer of recent request durations for percentile calculations.
	durations  []time.Duration
	maxSamples int

	startTime time.Time
}

// Snapshot is a point-in-time view of the tracker.
type Snapshot struct {
	TotalRequests int64
	ClientErrors  int64
	ServerErrors  int64

	P50 time.Duration // 50th percentile of recent requests
	P90 time.Duration // 90th percentile of recent requests

	Uptime time.Duration
}

// New creates a Tracker keeping up to maxSamples recent durations.
func New(maxSamples int) *Tracker {
	if maxSamples <= 0 {
		maxSamples = 100
	}
	return &Tracker{
		durations:  make([]time.Duration, 0, maxSamples),
		maxSamples: maxSamples,
		startTime:  time.Now(),
	}
}

// Record registers a completed request with its response status and duration.
func (t *Tracker) Record(status int, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	switch {
	case status >= 500:
		t.serverErrors++
	case status >= 400:
		t.clientErrors++
	}

	if len(t.durations) >= t.maxSamples {
		// Shift left, drop oldest
		copy(t.durations, t.durations[1:])
		t.durations = t.durations[:len(t.durations)-1]
	}
	t.durations = append(t.durations, duration)
}

// Snapshot returns current counters and percentiles.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snap := Snapshot{
		TotalRequests: t.total,
		ClientErrors:  t.clientErrors,
		ServerErrors:  t.serverErrors,
		Uptime:        time.Since(t.startTime),
	}

	n := len(t.durations)
	if n == 0 {
		return snap
	}

	sorted := make([]time.Duration, n)
	copy(sorted, t.durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	snap.P50 = sorted[n/2]

	p90 := int(float64(n) * 0.9)
	if p90 >= n {
		p90 = n - 1
	}
	snap.P90 = sorted[p90]

	return snap
}
