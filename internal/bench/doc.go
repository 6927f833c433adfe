// Package bench provides the core benchmark execution engine for tokenburn.
//
// The bench package coordinates many concurrent streaming completion
// requests under a fixed concurrency ceiling and aggregates their timing
// into a final report:
//
//   - [Executor] issues one streamed request: it picks a prompt, bounds the
//     stream with the per-request timeout, and converts every failure or
//     timeout into an absent result reported through a [FailureLogger].
//   - [Runner] drains a queue of task indices with C worker goroutines, so
//     at most C requests are in flight at any instant. An optional
//     rate.Limiter paces task admission.
//   - [Run] is the orchestrator: it gates the run on a cheap preflight
//     request, measures wall-clock time around the drain, and assembles
//     the [Report].
//
// # Collaborator Interface
//
// The engine is transport-agnostic. It consumes any [StreamClient]:
//
//	type StreamClient interface {
//		StreamCompletion(ctx context.Context, model, prompt string, maxTokens int) (FragmentStream, error)
//	}
//
// A fragment stream yields incremental [Fragment] values until one is
// marked Terminal. Fragment order is the only assumption made about the
// wire protocol.
//
// # Statistics
//
// The final [Report] carries average and p50/p95/p99 blocks for request
// latency, tokens per second, and time to first token. Throughput
// percentiles are reverse-interpolated so p99 reports the slow tail.
package bench
