package metrics

import "sort"

// Percentile returns the value at the given percentile (0-100) using linear
// interpolation between the two nearest ranks. The second return value is
// false when the sample set is empty.
func Percentile(samples []float64, p float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0], true
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(rank)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1], true
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower]), true
}

// ReversePercentile returns the value at the (100-p)th percentile. Used for
// throughput, where the reported p99 should capture the slow tail rather
// than the fastest requests.
func ReversePercentile(samples []float64, p float64) (float64, bool) {
	return Percentile(samples, 100-p)
}

// Mean returns the arithmetic mean of the samples, or zero when empty.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}
