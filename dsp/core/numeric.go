package core

import "math"

const defaultEpsilon = 1e-12

// Float is the set of sample types the engines are instantiated with.
type Float interface {
	~float32 | ~float64
}

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
