package metrics

import "math"

// Round2 rounds a value to two decimal places. Non-finite values pass
// through unchanged.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// PctDiff returns the signed percentage deviation of current from
// reference, elementwise: (current-reference)/reference*100, rounded to
// two decimal places. The slices must be row-aligned and equal length.
// Division by a zero reference is not guarded; ±Inf and NaN propagate
// for downstream consumers to tolerate.
func PctDiff(current, reference []float64) []float64 {
	out := make([]float64, len(current))
	for i := range current {
		out[i] = Round2((current[i] - reference[i]) / reference[i] * 100)
	}
	return out
}
