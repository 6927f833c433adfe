package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tokenburn/tokenburn/internal/metrics"
	"github.com/tokenburn/tokenburn/internal/tracing"
)

// Preflight issues a deliberately small request so a misconfigured target
// fails within seconds instead of after a full run.
const (
	preflightMaxTokens = 16
	preflightTimeout   = 5 * time.Second
)

// Executor issues one complete streamed request per task. Every exit path
// yields either a populated Result or an absence reported through Log;
// errors never propagate to the worker loop.
type Executor struct {
	Client              StreamClient
	Prompts             PromptSource
	Model               string
	MaxCompletionTokens int
	Timeout             time.Duration

	Collector *metrics.Collector // optional live stats for progress output
	Tracer    trace.Tracer       // optional per-request spans
	Log       FailureLogger      // optional failure side channel
}

// Do executes the request for one task under the configured caps.
func (e *Executor) Do(ctx context.Context, task int) (Result, bool) {
	return e.execute(ctx, task, e.MaxCompletionTokens, e.Timeout, true)
}

// Preflight executes one low-cost request with fixed small caps. It does
// not contribute to the collector's run statistics.
func (e *Executor) Preflight(ctx context.Context) bool {
	_, ok := e.execute(ctx, -1, preflightMaxTokens, preflightTimeout, false)
	return ok
}

func (e *Executor) execute(ctx context.Context, task, maxTokens int, timeout time.Duration, record bool) (Result, bool) {
	start := time.Now()

	prompt, err := e.Prompts.Pick(ctx)
	if err != nil {
		e.fail(task, record, fmt.Errorf("pick prompt: %w", err))
		return Result{}, false
	}

	var span trace.Span
	if e.Tracer != nil {
		ctx, span = tracing.StartRequestSpan(ctx, e.Tracer, e.Model)
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	stream, err := e.Client.StreamCompletion(reqCtx, e.Model, prompt, maxTokens)
	if err != nil {
		err = e.classify(err, reqCtx, timeout)
		if span != nil {
			tracing.EndSpan(span, err)
		}
		e.fail(task, record, err)
		return Result{}, false
	}
	defer stream.Close()

	firstAt, tokens, err := consumeStream(reqCtx, stream)
	if err != nil {
		err = e.classify(err, reqCtx, timeout)
		if span != nil {
			tracing.EndSpan(span, err)
		}
		e.fail(task, record, err)
		return Result{}, false
	}

	elapsed := time.Since(start)
	res := Result{
		CompletionTokens: tokens,
		Latency:          elapsed,
		TokensPerSecond:  throughput(tokens, elapsed),
	}
	if !firstAt.IsZero() {
		res.TTFT = firstAt.Sub(start)
		res.TTFTValid = true
	}

	if span != nil {
		tracing.EndSpan(span, nil,
			attribute.Int("gen_ai.usage.completion_tokens", tokens),
			attribute.Float64("tokenburn.ttft_ms", float64(res.TTFT)/float64(time.Millisecond)),
		)
	}
	if record && e.Collector != nil {
		e.Collector.RecordSuccess(elapsed)
	}
	return res, true
}

// classify rewrites deadline errors so the side channel distinguishes a
// per-request timeout from a transport failure.
func (e *Executor) classify(err error, ctx context.Context, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out after %s", timeout)
	}
	return err
}

func (e *Executor) fail(task int, record bool, err error) {
	if record && e.Collector != nil {
		e.Collector.RecordFailure()
	}
	if e.Log != nil {
		e.Log.LogFailure(task, err)
	}
}
