package testutil

// Convolve returns the full linear convolution of x and h, of length
// len(x)+len(h)-1. It returns nil if either input is empty.
func Convolve(x, h []float64) []float64 {
	if len(x) == 0 || len(h) == 0 {
		return nil
	}
	out := make([]float64, len(x)+len(h)-1)
	for i, xv := range x {
		for k, hv := range h {
			out[i+k] += xv * hv
		}
	}
	return out
}

// Float32 converts a float64 slice to float32.
func Float32(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	return out
}

// Float64 converts a float32 slice to float64.
func Float64(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}
