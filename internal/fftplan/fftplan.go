// Package fftplan builds complex FFT transforms of arbitrary length.
//
// Power-of-two lengths use github.com/cwbudde/algo-fft plans. Other lengths
// fall back to gonum's mixed-radix complex FFT. Both backends produce a
// normalized inverse: Inverse(Forward(x)) == x.
package fftplan

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrInvalidLength is returned for non-positive transform lengths.
var ErrInvalidLength = errors.New("fftplan: transform length must be positive")

// Transform is a reusable complex FFT of fixed length.
// dst and src must both have length Len(); they may be the same slice.
type Transform[C algofft.Complex] interface {
	Len() int
	Forward(dst, src []C) error
	Inverse(dst, src []C) error
}

// New returns a transform of length n.
func New[C algofft.Complex](n int) (Transform[C], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if n == 1 {
		return identity[C]{}, nil
	}
	if IsPowerOf2(n) {
		plan, err := algofft.NewPlanT[C](n)
		if err != nil {
			return nil, fmt.Errorf("fftplan: failed to create FFT plan: %w", err)
		}
		return &pow2Transform[C]{n: n, plan: plan}, nil
	}
	return newMixedRadix[C](n), nil
}

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// identity is the length-1 DFT.
type identity[C algofft.Complex] struct{}

func (identity[C]) Len() int { return 1 }

func (identity[C]) Forward(dst, src []C) error {
	if err := checkLen(1, dst, src); err != nil {
		return err
	}
	dst[0] = src[0]
	return nil
}

func (t identity[C]) Inverse(dst, src []C) error { return t.Forward(dst, src) }

type pow2Transform[C algofft.Complex] struct {
	n    int
	plan *algofft.Plan[C]
}

func (t *pow2Transform[C]) Len() int { return t.n }

func (t *pow2Transform[C]) Forward(dst, src []C) error {
	if err := checkLen(t.n, dst, src); err != nil {
		return err
	}
	return t.plan.Forward(dst, src)
}

func (t *pow2Transform[C]) Inverse(dst, src []C) error {
	if err := checkLen(t.n, dst, src); err != nil {
		return err
	}
	return t.plan.Inverse(dst, src)
}

// mixedRadix wraps gonum's CmplxFFT, which works in complex128 and leaves
// the inverse unscaled.
type mixedRadix[C algofft.Complex] struct {
	fft   *fourier.CmplxFFT
	work  []complex128
	scale float64
}

func newMixedRadix[C algofft.Complex](n int) *mixedRadix[C] {
	return &mixedRadix[C]{
		fft:   fourier.NewCmplxFFT(n),
		work:  make([]complex128, n),
		scale: 1 / float64(n),
	}
}

func (t *mixedRadix[C]) Len() int { return len(t.work) }

func (t *mixedRadix[C]) Forward(dst, src []C) error {
	if err := checkLen(len(t.work), dst, src); err != nil {
		return err
	}
	load(t.work, src)
	t.fft.Coefficients(t.work, t.work)
	store(dst, t.work, 1)
	return nil
}

func (t *mixedRadix[C]) Inverse(dst, src []C) error {
	if err := checkLen(len(t.work), dst, src); err != nil {
		return err
	}
	load(t.work, src)
	t.fft.Sequence(t.work, t.work)
	store(dst, t.work, t.scale)
	return nil
}

func load[C algofft.Complex](dst []complex128, src []C) {
	switch s := any(src).(type) {
	case []complex128:
		copy(dst, s)
	case []complex64:
		for i, v := range s {
			dst[i] = complex128(v)
		}
	}
}

func store[C algofft.Complex](dst []C, src []complex128, scale float64) {
	switch d := any(dst).(type) {
	case []complex128:
		for i, v := range src {
			d[i] = complex(real(v)*scale, imag(v)*scale)
		}
	case []complex64:
		for i, v := range src {
			d[i] = complex64(complex(real(v)*scale, imag(v)*scale))
		}
	}
}

func checkLen[C algofft.Complex](n int, dst, src []C) error {
	if len(dst) != n || len(src) != n {
		return fmt.Errorf("fftplan: buffer length mismatch: dst %d, src %d, want %d", len(dst), len(src), n)
	}
	return nil
}
