package bench

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Exec abstracts executing the benchmark's requests. Do returns the result
// of one task, or false for a failed or timed-out request; Preflight runs
// the cheap connectivity probe that gates the whole run.
type Exec interface {
	Do(ctx context.Context, task int) (Result, bool)
	Preflight(ctx context.Context) bool
}

// Options configure a benchmark run.
type Options struct {
	Model               string
	Requests            int // total requests to execute
	Concurrency         int // worker goroutines; also the in-flight ceiling
	RequestTimeout      time.Duration
	MaxCompletionTokens int
	RatePerSecond       int // task admission pacing (0 means unlimited)

	LimiterFactory func(rps int) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.Requests < 0 {
		o.Requests = 0
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.RatePerSecond < 0 {
		o.RatePerSecond = 0
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			if rps <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst equal to rps to smooth pacing under concurrency.
			return rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}

// RunResult captures one completed drain of the task queue.
type RunResult struct {
	Results  []Result // unordered; one entry per successful request
	Failures int64
	Duration time.Duration
}

// Runner drains a fixed queue of tasks with a pool of concurrent workers.
// The pool size doubles as the in-flight ceiling: a worker holds its slot
// for the full duration of a request, so at most Concurrency requests are
// active at any instant.
type Runner struct {
	opt  Options
	exec Exec
}

func NewRunner(opt Options, exec Exec) *Runner {
	opt.normalize()
	return &Runner{opt: opt, exec: exec}
}

// Run enqueues every task index, launches the workers, and blocks until
// the queue is fully drained and every worker has exited. Cancelling ctx
// stops workers between tasks; an individual request timeout never affects
// sibling requests.
func (r *Runner) Run(ctx context.Context) RunResult {
	start := time.Now()

	tasks := make(chan int, r.opt.Requests)
	for i := 0; i < r.opt.Requests; i++ {
		tasks <- i
	}
	// Closing the channel is the workers' stop signal: each worker exits
	// once the queue is empty.
	close(tasks)

	limiter := r.opt.LimiterFactory(r.opt.RatePerSecond)

	var (
		mu       sync.Mutex
		results  []Result
		failures int64
	)

	var wg sync.WaitGroup
	wg.Add(r.opt.Concurrency)
	for i := 0; i < r.opt.Concurrency; i++ {
		go func() {
			defer wg.Done()
			for task := range tasks {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				res, ok := r.exec.Do(ctx, task)
				if ok {
					mu.Lock()
					results = append(results, res)
					mu.Unlock()
				} else {
					atomic.AddInt64(&failures, 1)
				}
				if ctx.Err() != nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	return RunResult{
		Results:  results,
		Failures: atomic.LoadInt64(&failures),
		Duration: time.Since(start),
	}
}
