// Package stats provides cross-sectional statistics over firm populations.
package stats

import "sort"

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// TrimmedMean returns the mean of values after discarding the lowest and
// highest floor(p*n) elements by sorted order. p must be in [0, 0.5);
// callers must not pass an empty slice. With p = 0 this is a plain mean.
func TrimmedMean(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	cut := int(p * float64(len(sorted)))
	kept := sorted[cut : len(sorted)-cut]

	sum := 0.0
	for _, v := range kept {
		sum += v
	}
	return sum / float64(len(kept))
}
