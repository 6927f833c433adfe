package bench

import "context"

// Fragment is one incremental piece of a streamed completion response.
type Fragment struct {
	Content  string // newly generated text, may be empty
	Terminal bool   // true when this fragment ends the stream
}

// FragmentStream yields the fragments of one request's response in arrival
// order. It is owned by a single request.
type FragmentStream interface {
	Recv(ctx context.Context) (Fragment, error)
	Close() error
}

// StreamClient issues streaming completion requests. Implementations must
// be safe for concurrent use: all workers share one client.
type StreamClient interface {
	StreamCompletion(ctx context.Context, model, prompt string, maxTokens int) (FragmentStream, error)
}

// PromptSource supplies one prompt per request.
type PromptSource interface {
	Pick(ctx context.Context) (string, error)
}

// FailureLogger receives per-request failures and timeouts. Task is the
// queue index of the failed request, or negative for the preflight check.
type FailureLogger interface {
	LogFailure(task int, err error)
}
