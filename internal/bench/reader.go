package bench

import (
	"context"
	"errors"
	"io"
	"time"
)

// consumeStream drains a fragment stream until a terminal fragment arrives
// or the stream ends. It returns the arrival time of the first fragment
// (zero if none arrived) and the count of fragments carrying non-empty
// content. The stream is not retried or re-opened; the caller owns Close.
func consumeStream(ctx context.Context, stream FragmentStream) (firstAt time.Time, tokens int, err error) {
	for {
		frag, err := stream.Recv(ctx)
		if err != nil {
			// A clean end of stream without a terminal fragment still
			// completes the request.
			if errors.Is(err, io.EOF) {
				return firstAt, tokens, nil
			}
			return firstAt, tokens, err
		}
		if firstAt.IsZero() {
			firstAt = time.Now()
		}
		if frag.Content != "" {
			tokens++
		}
		if frag.Terminal {
			return firstAt, tokens, nil
		}
	}
}
