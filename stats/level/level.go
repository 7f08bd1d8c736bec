// Package level computes block level statistics of sample buffers: RMS,
// peak, DC offset and crest factor, plus the error between a signal and
// its reconstruction.
package level

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/internal/vecmath"
)

// Level holds level statistics of a signal.
//
//nolint:revive
type Level struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	return core.LinearToDB(math.Abs(value))
}

func emptyLevel() Level {
	return Level{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

func finish(n int, sum, sumSq, peak float64) Level {
	if n == 0 {
		return emptyLevel()
	}
	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	var crest, crestdB float64
	if rms != 0 {
		crest = peak / rms
		crestdB = core.LinearToDB(crest)
	}

	return Level{
		Length:         n,
		DC:             sum / nf,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         sumSq,
	}
}

// Calculate computes the level statistics of signal.
func Calculate[F core.Float](signal []F) Level {
	if len(signal) == 0 {
		return emptyLevel()
	}
	return finish(len(signal),
		vecmath.Sum(signal),
		vecmath.DotProduct(signal, signal),
		float64(vecmath.MaxAbs(signal)))
}

// Meter accumulates level statistics across blocks.
type Meter[F core.Float] struct {
	n     int
	sum   float64
	sumSq float64
	peak  float64
}

// Update adds a block of samples.
func (m *Meter[F]) Update(samples []F) {
	if len(samples) == 0 {
		return
	}
	m.n += len(samples)
	m.sum += vecmath.Sum(samples)
	m.sumSq += vecmath.DotProduct(samples, samples)
	m.peak = math.Max(m.peak, float64(vecmath.MaxAbs(samples)))
}

// Write implements stream.Sink so a Meter can observe an output stream.
func (m *Meter[F]) Write(p []F) (int, error) {
	m.Update(p)
	return len(p), nil
}

// Result returns the statistics of all samples seen so far.
func (m *Meter[F]) Result() Level {
	return finish(m.n, m.sum, m.sumSq, m.peak)
}

// Reset discards all accumulated samples.
func (m *Meter[F]) Reset() { *m = Meter[F]{} }

// Error describes how far a signal deviates from a reference.
//
//nolint:revive
type Error struct {
	MaxAbs float64 // max |got - want|
	RMS    float64 // RMS of got - want
	SNR_dB float64 // reference RMS over error RMS, +Inf for an exact match
}

// Compare measures the deviation of got from want. Both slices must have the
// same length.
func Compare[F core.Float](got, want []F) (Error, error) {
	if len(got) != len(want) {
		return Error{}, fmt.Errorf("level: length mismatch: %d vs %d", len(got), len(want))
	}
	if len(got) == 0 {
		return Error{SNR_dB: math.Inf(1)}, nil
	}

	var maxAbs, sumSq, refSq float64
	for i := range got {
		d := float64(got[i]) - float64(want[i])
		maxAbs = math.Max(maxAbs, math.Abs(d))
		sumSq += d * d
		refSq += float64(want[i]) * float64(want[i])
	}

	nf := float64(len(got))
	e := Error{
		MaxAbs: maxAbs,
		RMS:    math.Sqrt(sumSq / nf),
	}
	switch {
	case sumSq == 0:
		e.SNR_dB = math.Inf(1)
	default:
		e.SNR_dB = 10 * math.Log10(refSq/sumSq)
	}
	return e, nil
}
