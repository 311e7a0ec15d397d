package backend

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at time.Time
	ms int64
}

// StatsSnapshot aggregates the backend latencies currently in the window.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// LatencyStats keeps backend round-trip times for a rolling window.
type LatencyStats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
	now     func() time.Time
}

func NewLatencyStats(window time.Duration) *LatencyStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LatencyStats{
		samples: make([]sample, 0, 128),
		window:  window,
		now:     time.Now,
	}
}

func (s *LatencyStats) Record(ms int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.dropExpired(now)
	s.samples = append(s.samples, sample{at: now, ms: max(ms, 0)})
}

func (s *LatencyStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropExpired(s.now())
	n := len(s.samples)
	if n == 0 {
		return StatsSnapshot{}
	}

	sorted := make([]int64, n)
	var total int64
	for i, sm := range s.samples {
		sorted[i] = sm.ms
		total += sm.ms
	}
	slices.Sort(sorted)

	return StatsSnapshot{
		Count: n,
		MinMs: sorted[0],
		MaxMs: sorted[n-1],
		AvgMs: float64(total) / float64(n),
		P50Ms: quantile(sorted, 50),
		P95Ms: quantile(sorted, 95),
		P99Ms: quantile(sorted, 99),
	}
}

// dropExpired removes samples older than the window. Samples are appended
// in time order, so the expired ones form a prefix.
func (s *LatencyStats) dropExpired(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.samples) && s.samples[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.samples = slices.Delete(s.samples, 0, i)
	}
}

// quantile linearly interpolates between the closest ranks of sorted; pct
// is in [0, 100].
func quantile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	pos := float64(len(sorted)-1) * pct / 100
	lo := int(pos)
	if lo+1 >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}
