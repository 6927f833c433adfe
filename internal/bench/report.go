package bench

import (
	"time"

	"github.com/tokenburn/tokenburn/internal/metrics"
)

// Metric is one statistic block of the report. Percentiles are nil when no
// samples were collected.
type Metric struct {
	Average float64  `json:"average"`
	P50     *float64 `json:"p50"`
	P95     *float64 `json:"p95"`
	P99     *float64 `json:"p99"`
}

// Report is the immutable summary of a completed run, serialized verbatim.
type Report struct {
	Model                 string  `json:"model"`
	TotalRequests         int     `json:"total_requests"`
	SuccessfulRequests    int     `json:"successful_requests"`
	Concurrency           int     `json:"concurrency"`
	RequestTimeout        int     `json:"request_timeout"` // whole seconds
	MaxCompletionTokens   int     `json:"max_completion_tokens"`
	TotalTime             float64 `json:"total_time"` // seconds
	RequestsPerSecond     float64 `json:"requests_per_second"`
	TotalCompletionTokens int     `json:"total_completion_tokens"`
	Latency               Metric  `json:"latency"`
	TokensPerSecond       Metric  `json:"tokens_per_second"`
	TimeToFirstToken      Metric  `json:"time_to_first_token"`
}

// buildReport aggregates a completed run into the final report.
func buildReport(opt Options, run RunResult) *Report {
	latencies := make([]float64, 0, len(run.Results))
	tokensPerSec := make([]float64, 0, len(run.Results))
	ttfts := make([]float64, 0, len(run.Results))
	totalTokens := 0

	for _, res := range run.Results {
		totalTokens += res.CompletionTokens
		latencies = append(latencies, res.Latency.Seconds())
		tokensPerSec = append(tokensPerSec, res.TokensPerSecond)
		if res.TTFTValid {
			ttfts = append(ttfts, res.TTFT.Seconds())
		}
	}

	successful := len(run.Results)
	elapsed := run.Duration.Seconds()
	rps := 0.0
	if elapsed > 0 {
		rps = float64(successful) / elapsed
	}

	return &Report{
		Model:                 opt.Model,
		TotalRequests:         opt.Requests,
		SuccessfulRequests:    successful,
		Concurrency:           opt.Concurrency,
		RequestTimeout:        int(opt.RequestTimeout / time.Second),
		MaxCompletionTokens:   opt.MaxCompletionTokens,
		TotalTime:             elapsed,
		RequestsPerSecond:     rps,
		TotalCompletionTokens: totalTokens,
		Latency:               newMetric(latencies, false),
		TokensPerSecond:       newMetric(tokensPerSec, true),
		TimeToFirstToken:      newMetric(ttfts, false),
	}
}

// newMetric builds a statistic block. Reverse percentiles report the low
// tail, so a throughput p99 captures worst-case degradation.
func newMetric(samples []float64, reverse bool) Metric {
	return Metric{
		Average: metrics.Mean(samples),
		P50:     percentileOf(samples, 50, reverse),
		P95:     percentileOf(samples, 95, reverse),
		P99:     percentileOf(samples, 99, reverse),
	}
}

func percentileOf(samples []float64, p float64, reverse bool) *float64 {
	var (
		val float64
		ok  bool
	)
	if reverse {
		val, ok = metrics.ReversePercentile(samples, p)
	} else {
		val, ok = metrics.Percentile(samples, p)
	}
	if !ok {
		return nil
	}
	return &val
}
