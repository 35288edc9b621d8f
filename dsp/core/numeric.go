package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// SampleCount returns floor(seconds * sampleRate), or 0 for non-positive
// or non-finite products and for counts that do not fit in an int.
func SampleCount(seconds, sampleRate float64) int {
	n := math.Floor(seconds * sampleRate)
	if n <= 0 || math.IsNaN(n) || n >= math.MaxInt {
		return 0
	}
	return int(n)
}

// RelativeDeviation returns (actual-reference)/reference*100.
func RelativeDeviation(actual, reference float64) float64 {
	if reference == 0 {
		return math.NaN()
	}
	return (actual - reference) / reference * 100
}
