package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/internal/vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeSine
	TypeTriangle
)

var hannCoeffs = []float64{0.5, -0.5}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalWindow(t, x)
	}

	return out
}

// Taper returns the weighting a block of the given size receives when it
// is joined to its neighbours with n-sample crossfades: ones, with the up
// ramp of Crossfade over the first n samples if fadeIn is set and the down
// ramp over the last n samples if fadeOut is set.
func Taper[F core.Float](size, n int, fadeIn, fadeOut bool) ([]F, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}
	if n < 0 || n > size {
		return nil, fmt.Errorf("crossfade length %d out of range for size %d", n, size)
	}

	out := make([]F, size)
	for i := range out {
		out[i] = 1
	}
	up, down := Crossfade[F](n)
	if fadeIn {
		if err := ApplyCoefficientsInPlace(out[:n], up); err != nil {
			return nil, err
		}
	}
	if fadeOut {
		if err := ApplyCoefficientsInPlace(out[size-n:], down); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Crossfade returns the complementary sin² fade pair of length n used to
// join overlapping blocks:
//
//	up[k]   = sin²(π k / 2n)
//	down[k] = sin²(π (n+k) / 2n) = cos²(π k / 2n)
//
// Both halves come from one periodic Hann window of length 2n, so
// up[k]+down[k] == 1 at every offset and the fade preserves a constant
// signal. n == 0 yields two empty slices.
func Crossfade[F core.Float](n int) (up, down []F) {
	up = make([]F, n)
	down = make([]F, n)
	if n == 0 {
		return up, down
	}

	w := Generate(TypeHann, 2*n, WithPeriodic())
	for k := range n {
		up[k] = F(w[k])
		down[k] = F(w[n+k])
	}

	return up, down
}

// CoherentGain returns the mean of the window coefficients.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	return vecmath.Sum(coeffs) / float64(len(coeffs)), nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := vecmath.Sum(coeffs)
	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * vecmath.DotProduct(coeffs, coeffs) / (sum * sum), nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace[F core.Float](samples, coeffs []F) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeSine:
		return math.Sin(math.Pi * x)
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
