package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tokenburn/tokenburn/internal/bench"
)

// WriteJSONReport writes the report as indented JSON.
func WriteJSONReport(w io.Writer, report *bench.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteReportFile saves the JSON report to the given path.
func WriteReportFile(path string, report *bench.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer f.Close()

	if err := WriteJSONReport(f, report); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}

// PrintSummary outputs a human-readable run summary.
func PrintSummary(w io.Writer, report *bench.Report) {
	fmt.Fprintln(w, "\n--- Benchmark Results ---")
	fmt.Fprintf(w, "Model:                %s\n", report.Model)
	fmt.Fprintf(w, "Total Requests:       %d\n", report.TotalRequests)
	fmt.Fprintf(w, "Successful:           %d\n", report.SuccessfulRequests)
	fmt.Fprintf(w, "Concurrency:          %d\n", report.Concurrency)
	fmt.Fprintf(w, "Total Time:           %.2fs\n", report.TotalTime)
	fmt.Fprintf(w, "Requests/sec:         %.2f\n", report.RequestsPerSecond)
	fmt.Fprintf(w, "Completion Tokens:    %d\n", report.TotalCompletionTokens)

	writeMetric(w, "Latency (s)", report.Latency)
	writeMetric(w, "Tokens/sec", report.TokensPerSecond)
	writeMetric(w, "Time to First Token (s)", report.TimeToFirstToken)
}

func writeMetric(w io.Writer, name string, m bench.Metric) {
	fmt.Fprintf(w, "\n%s:\n", name)
	fmt.Fprintf(w, "  Average:            %.3f\n", m.Average)
	fmt.Fprintf(w, "  P50:                %s\n", formatPercentile(m.P50))
	fmt.Fprintf(w, "  P95:                %s\n", formatPercentile(m.P95))
	fmt.Fprintf(w, "  P99:                %s\n", formatPercentile(m.P99))
}

func formatPercentile(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *v)
}
