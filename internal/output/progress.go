package output

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/tokenburn/tokenburn/internal/metrics"
)

// ProgressReporter displays real-time progress updates while the queue
// drains.
type ProgressReporter struct {
	collector *metrics.Collector
	ticker    *time.Ticker
	done      chan struct{}
	finished  chan struct{}
	writer    io.Writer
	active    int32
}

// NewProgressReporter creates a progress reporter that updates at the
// given interval.
func NewProgressReporter(collector *metrics.Collector, interval time.Duration, writer io.Writer) *ProgressReporter {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressReporter{
		collector: collector,
		ticker:    time.NewTicker(interval),
		done:      make(chan struct{}),
		finished:  make(chan struct{}),
		writer:    writer,
	}
}

// Start begins displaying progress updates in a background goroutine.
func (p *ProgressReporter) Start() {
	if !atomic.CompareAndSwapInt32(&p.active, 0, 1) {
		return // already running
	}
	go p.run()
}

// Stop halts progress updates.
func (p *ProgressReporter) Stop() {
	if atomic.CompareAndSwapInt32(&p.active, 1, 0) {
		close(p.done)
		p.ticker.Stop()
		<-p.finished
	}
}

func (p *ProgressReporter) run() {
	defer close(p.finished)
	for {
		select {
		case <-p.ticker.C:
			snap := p.collector.Snapshot()
			line := fmt.Sprintf("\rRequests: %d | Successes: %d | Failures: %d | RPS: %.1f",
				snap.Total, snap.Successes, snap.Failures, snap.RequestsPerSec)
			if snap.P50Latency > 0 {
				line += fmt.Sprintf(" | P50 %.1fs | P99 %.1fs",
					snap.P50Latency.Seconds(), snap.P99Latency.Seconds())
			}
			fmt.Fprint(p.writer, line)
		case <-p.done:
			return
		}
	}
}
