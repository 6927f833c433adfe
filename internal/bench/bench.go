package bench

import (
	"context"
	"errors"
)

// ErrPreflightFailed aborts a run whose target is unreachable or
// misconfigured before any timed work begins.
var ErrPreflightFailed = errors.New("preflight check failed: verify configuration and service status")

// Run orchestrates one complete benchmark: preflight gate, queue drain
// under the concurrency ceiling, and report assembly. No tasks are
// enqueued when the preflight fails.
func Run(ctx context.Context, exec Exec, opt Options) (*Report, error) {
	opt.normalize()

	if !exec.Preflight(ctx) {
		return nil, ErrPreflightFailed
	}

	run := NewRunner(opt, exec).Run(ctx)
	return buildReport(opt, run), nil
}
