// Package vecmath provides generic element-wise kernels over sample slices.
//
// float64 slices are dispatched to the SIMD kernels of
// github.com/cwbudde/algo-vecmath; every other element type uses the scalar
// loops in this package. All functions panic on length mismatch, like the
// kernels they wrap.
package vecmath

import (
	algovec "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
)

func checkLen(n int, others ...int) {
	for _, m := range others {
		if m != n {
			panic("vecmath: slice length mismatch")
		}
	}
}

// MulBlock performs element-wise multiplication: dst[i] = a[i] * b[i].
func MulBlock[F core.Float](dst, a, b []F) {
	if d, ok := any(dst).([]float64); ok {
		algovec.MulBlock(d, any(a).([]float64), any(b).([]float64))
		return
	}
	checkLen(len(dst), len(a), len(b))
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

// MulBlockInPlace performs in-place multiplication: dst[i] *= src[i].
func MulBlockInPlace[F core.Float](dst, src []F) {
	if d, ok := any(dst).([]float64); ok {
		algovec.MulBlockInPlace(d, any(src).([]float64))
		return
	}
	checkLen(len(dst), len(src))
	for i := range dst {
		dst[i] *= src[i]
	}
}

// MulAddBlock computes dst[i] = a[i]*b[i] + c[i].
func MulAddBlock[F core.Float](dst, a, b, c []F) {
	if d, ok := any(dst).([]float64); ok {
		algovec.MulAddBlock(d, any(a).([]float64), any(b).([]float64), any(c).([]float64))
		return
	}
	checkLen(len(dst), len(a), len(b), len(c))
	for i := range dst {
		dst[i] = a[i]*b[i] + c[i]
	}
}

// AddBlockInPlace performs in-place addition: dst[i] += src[i].
func AddBlockInPlace[F core.Float](dst, src []F) {
	if d, ok := any(dst).([]float64); ok {
		algovec.AddBlockInPlace(d, any(src).([]float64))
		return
	}
	checkLen(len(dst), len(src))
	for i := range dst {
		dst[i] += src[i]
	}
}

// MaxAbs returns the maximum absolute value in x, or 0 for an empty slice.
func MaxAbs[F core.Float](x []F) F {
	if v, ok := any(x).([]float64); ok {
		return F(algovec.MaxAbs(v))
	}
	var m F
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}

// Sum returns the sum of all elements of x.
func Sum[F core.Float](x []F) float64 {
	if v, ok := any(x).([]float64); ok {
		return algovec.Sum(v)
	}
	var s float64
	for _, v := range x {
		s += float64(v)
	}
	return s
}

// DotProduct returns sum(a[i] * b[i]).
func DotProduct[F core.Float](a, b []F) float64 {
	if v, ok := any(a).([]float64); ok {
		return algovec.DotProduct(v, any(b).([]float64))
	}
	checkLen(len(a), len(b))
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}
