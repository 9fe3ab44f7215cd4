package hiterror

import "math"

// StandardDeviation calculates the population standard deviation of values.
// Non-finite values are ignored. Fewer than two usable values give 0.
func StandardDeviation(values []float64) float64 {
	count := 0
	sum := 0.0

	for _, v := range values {
		if !finite(v) {
			continue
		}

		sum += v
		count++
	}

	if count <= 1 {
		return 0
	}

	mean := sum / float64(count)

	sumOfSquares := 0.0

	for _, v := range values {
		if !finite(v) {
			continue
		}

		diff := v - mean
		sumOfSquares += float64(diff * diff)
	}

	return math.Sqrt(sumOfSquares / float64(count))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
