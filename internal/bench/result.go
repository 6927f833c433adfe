package bench

import "time"

// Result is the outcome of one successfully completed request. Failed and
// timed-out requests produce no Result.
type Result struct {
	CompletionTokens int
	Latency          time.Duration
	TokensPerSecond  float64
	TTFT             time.Duration // valid only when TTFTValid is set
	TTFTValid        bool          // false when the stream produced no fragments
}

// throughput derives tokens per second, defined as zero for non-positive
// elapsed time.
func throughput(tokens int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(tokens) / elapsed.Seconds()
}
