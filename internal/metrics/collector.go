package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Collector records per-request outcomes in a thread-safe manner. It backs
// the live progress reporter; the final report is computed from the raw
// sample set instead, where exact rank interpolation matters.
type Collector struct {
	mu         sync.Mutex
	hist       *hdrhistogram.Histogram
	successes  int64
	failures   int64
	sumLatency time.Duration
	start      time.Time
}

// Snapshot represents aggregated in-flight statistics.
type Snapshot struct {
	Total          int64
	Successes      int64
	Failures       int64
	MeanLatency    time.Duration
	P50Latency     time.Duration
	P99Latency     time.Duration
	RequestsPerSec float64
}

func NewCollector() *Collector {
	// Track latencies from 1µs up to 10 minutes with 3 significant figures;
	// streaming completions routinely run far past typical HTTP latencies.
	h := hdrhistogram.New(1, 600_000_000, 3)
	return &Collector{
		hist:  h,
		start: time.Now(),
	}
}

// Start resets the collector's clock to now. Call it immediately before the
// run begins so RPS reflects run time, not setup time.
func (c *Collector) Start() {
	c.mu.Lock()
	c.start = time.Now()
	c.mu.Unlock()
}

// RecordSuccess records one completed request's latency.
func (c *Collector) RecordSuccess(latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	us := latency.Microseconds()
	if us < c.hist.LowestTrackableValue() {
		us = c.hist.LowestTrackableValue()
	}
	if us > c.hist.HighestTrackableValue() {
		us = c.hist.HighestTrackableValue()
	}
	_ = c.hist.RecordValue(us)
	c.sumLatency += latency
	c.successes++
}

// RecordFailure records one failed or timed-out request.
func (c *Collector) RecordFailure() {
	c.mu.Lock()
	c.failures++
	c.mu.Unlock()
}

// Snapshot computes the current aggregated view.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Total:     c.successes + c.failures,
		Successes: c.successes,
		Failures:  c.failures,
	}

	if c.successes > 0 {
		snap.MeanLatency = time.Duration(int64(c.sumLatency) / c.successes)
	}
	if c.hist.TotalCount() > 0 {
		snap.P50Latency = time.Duration(c.hist.ValueAtQuantile(50)) * time.Microsecond
		snap.P99Latency = time.Duration(c.hist.ValueAtQuantile(99)) * time.Microsecond
	}

	elapsed := time.Since(c.start)
	if elapsed > 0 && snap.Total > 0 {
		snap.RequestsPerSec = float64(snap.Total) / elapsed.Seconds()
	}
	return snap
}
