package fir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
)

// Direct is a multi-channel direct-form FIR filter using a circular-buffer
// delay line per channel. It computes
//
//	y[n] = sum_{k=0}^{L-1} h[k] * x[n-k]
//
// sample by sample and serves as the time-domain reference for BlockT.
// Unlike BlockT it accepts blocks of any length.
type Direct[F core.Float] struct {
	taps  *core.Matrix[F]
	delay *core.Matrix[F]
	pos   int
}

// NewDirect returns a filter over a copy of the taps in h (rows are taps,
// columns are channels).
func NewDirect[F core.Float](h *core.Matrix[F]) (*Direct[F], error) {
	if h.Empty() {
		return nil, fmt.Errorf("%w: %dx%d tap matrix", ErrEmptyFilter, h.Rows(), h.Cols())
	}
	return &Direct[F]{
		taps:  h.Copy(),
		delay: core.NewMatrix[F](h.Rows(), h.Cols()),
	}, nil
}

// Filter filters input into output frame by frame. input and output must
// have the same shape and one column per tap channel; they may be the same
// matrix.
func (d *Direct[F]) Filter(input, output *core.Matrix[F]) error {
	ch := d.taps.Cols()
	if input.Cols() != ch || output.Cols() != ch {
		return fmt.Errorf("%w: input %d, output %d, taps %d", ErrChannelMismatch, input.Cols(), output.Cols(), ch)
	}
	if input.Rows() != output.Rows() {
		return fmt.Errorf("%w: input %d, output %d", ErrBlockSizeMismatch, input.Rows(), output.Rows())
	}

	n := d.taps.Rows()
	for i := range input.Rows() {
		for c := range ch {
			h := d.taps.Col(c)
			line := d.delay.Col(c)
			line[d.pos] = input.At(i, c)

			var y F
			p := d.pos
			for k := range n {
				y += h[k] * line[p]
				p--
				if p < 0 {
					p = n - 1
				}
			}
			output.Set(i, c, y)
		}
		d.pos++
		if d.pos >= n {
			d.pos = 0
		}
	}
	return nil
}

// Reset clears the delay lines.
func (d *Direct[F]) Reset() {
	d.delay.Zero()
	d.pos = 0
}

// TapCount returns the filter length.
func (d *Direct[F]) TapCount() int { return d.taps.Rows() }

// ChannelCount returns the number of channels.
func (d *Direct[F]) ChannelCount() int { return d.taps.Cols() }

// Response computes the complex frequency response of channel ch at the
// given frequency (Hz) and sample rate (Hz).
func (d *Direct[F]) Response(ch int, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range d.taps.Col(ch) {
		h += complex(float64(c), 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response of channel ch in dB.
func (d *Direct[F]) MagnitudeDB(ch int, freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(d.Response(ch, freqHz, sampleRate)))
}
