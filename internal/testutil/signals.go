package testutil

import (
	"math"
	"math/rand"
)

// Sine returns n samples of amplitude*sin(2π f t) starting at phase 0.
func Sine[F Sample](freqHz, sampleRate, amplitude float64, n int) []F {
	out := make([]F, n)
	w := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = F(amplitude * math.Sin(w*float64(i)))
	}
	return out
}

// Noise returns n uniform samples in [-amplitude, amplitude). The same seed
// always yields the same sequence.
func Noise[F Sample](seed int64, amplitude float64, n int) []F {
	rng := rand.New(rand.NewSource(seed))
	out := make([]F, n)
	for i := range out {
		out[i] = F((2*rng.Float64() - 1) * amplitude)
	}
	return out
}

// Ramp returns 0, 1, ..., n-1. Sample values double as stream positions,
// which makes misplaced samples easy to spot.
func Ramp[F Sample](n int) []F {
	out := make([]F, n)
	for i := range out {
		out[i] = F(i)
	}
	return out
}

// DeterministicSine is Sine for float64.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	return Sine[float64](freqHz, sampleRate, amplitude, length)
}

// DeterministicNoise is Noise for float64.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	return Noise[float64](seed, amplitude, length)
}

// Impulse returns a unit impulse at pos; a pos outside [0, length) gives
// silence.
func Impulse(length, pos int) []float64 {
	out := DC(0, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	if value == 0 {
		return out
	}
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones is DC(1, n).
func Ones(n int) []float64 { return DC(1, n) }
