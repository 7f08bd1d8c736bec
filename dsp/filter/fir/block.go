package fir

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/internal/fftplan"
	"github.com/cwbudde/algo-blockdsp/internal/vecmath"
)

// BlockT is a multi-channel FIR filter evaluated in the frequency domain
// with one FFT of the filter length L per channel and call.
//
// Each Filter call places the input block at the start of a zeroed L-sample
// frame, multiplies its spectrum by the tap spectrum and adds the result to
// a running output accumulator. The accumulator advances by one block per
// call, so the part of each block's response that extends past the block is
// emitted by later calls. The output is the exact linear convolution as long
// as every channel's taps are zero beyond index L-blockSize; use PadTaps to
// extend an arbitrary tap set to that form.
//
// The type parameters select precision: F is the sample type and C the
// matching complex type. BlockT is not safe for concurrent use.
type BlockT[F algofft.Float, C algofft.Complex] struct {
	blockSize int

	// Taps, L x channels, and their spectra
	taps    *core.Matrix[F]
	spectra [][]C
	fft     fftplan.Transform[C]

	// Input frame and output accumulator, L x channels
	x *core.Matrix[F]
	y *core.Matrix[F]

	// Per-channel scratch
	work []C
	re   []F
}

// Block is the float64 specialization of BlockT.
type Block = BlockT[float64, complex128]

// Block32 is the float32 specialization of BlockT.
type Block32 = BlockT[float32, complex64]

// NewBlockT returns an unconfigured filter. Call Init and
// LoadTimeDomainCoefficients (in either order) before Filter.
func NewBlockT[F algofft.Float, C algofft.Complex]() *BlockT[F, C] {
	return &BlockT[F, C]{
		taps: core.NewMatrix[F](0, 0),
		x:    core.NewMatrix[F](0, 0),
		y:    core.NewMatrix[F](0, 0),
	}
}

// NewBlock returns an unconfigured float64 filter.
func NewBlock() *Block { return NewBlockT[float64, complex128]() }

// NewBlock32 returns an unconfigured float32 filter.
func NewBlock32() *Block32 { return NewBlockT[float32, complex64]() }

// Init sets the number of frames processed per Filter call.
// Changing the block size clears the filter history.
func (b *BlockT[F, C]) Init(blockSize int) error {
	if blockSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBlockSize, blockSize)
	}
	if l := b.taps.Rows(); l > 0 && blockSize > l {
		return fmt.Errorf("%w: block %d, filter %d", ErrBlockSizeTooLarge, blockSize, l)
	}
	if blockSize != b.blockSize {
		b.blockSize = blockSize
		b.Reset()
	}
	return nil
}

// LoadTimeDomainCoefficients copies the taps in h (rows are taps, columns
// are channels), computes their spectra and clears the filter history.
// On error the previous configuration is kept.
func (b *BlockT[F, C]) LoadTimeDomainCoefficients(h *core.Matrix[F]) error {
	if h.Empty() {
		return fmt.Errorf("%w: %dx%d tap matrix", ErrEmptyFilter, h.Rows(), h.Cols())
	}
	l, ch := h.Rows(), h.Cols()
	if b.blockSize > l {
		return fmt.Errorf("%w: block %d, filter %d", ErrBlockSizeTooLarge, b.blockSize, l)
	}

	fft := b.fft
	if fft == nil || fft.Len() != l {
		var err error
		if fft, err = fftplan.New[C](l); err != nil {
			return fmt.Errorf("fir: %w", err)
		}
	}

	spectra := make([][]C, ch)
	for c := range spectra {
		spectra[c] = make([]C, l)
		loadReal(spectra[c], h.Col(c))
		if err := fft.Forward(spectra[c], spectra[c]); err != nil {
			return fmt.Errorf("fir: tap spectrum of channel %d: %w", c, err)
		}
	}

	b.taps = h.Copy()
	b.spectra = spectra
	b.fft = fft
	b.work = growComplex(b.work, l)
	b.re = core.EnsureLen(b.re, l)
	b.x.SetZero(l, ch)
	b.y.SetZero(l, ch)
	return nil
}

// Filter convolves one block of input with the taps and writes one block of
// output. input and output must both be BlockSize() x ChannelCount(); they
// may be the same matrix. A rejected call leaves the filter state unchanged.
//
// Filter does not allocate once the filter is configured.
func (b *BlockT[F, C]) Filter(input, output *core.Matrix[F]) error {
	if !b.Configured() {
		return ErrEmptyFilter
	}
	n := b.blockSize
	if input.Rows() != n || output.Rows() != n {
		return fmt.Errorf("%w: input %d, output %d, want %d", ErrBlockSizeMismatch, input.Rows(), output.Rows(), n)
	}
	l, ch := b.taps.Rows(), b.taps.Cols()
	if input.Cols() != ch || output.Cols() != ch {
		return fmt.Errorf("%w: input %d, output %d, taps %d", ErrChannelMismatch, input.Cols(), output.Cols(), ch)
	}
	if n > l {
		return fmt.Errorf("%w: block %d, filter %d", ErrBlockSizeTooLarge, n, l)
	}

	if b.x.Rows() != l || b.x.Cols() != ch {
		b.x.SetZero(l, ch)
		b.y.SetZero(l, ch)
	}

	for c := range ch {
		y := b.y.Col(c)
		copy(y, y[n:])
		core.Zero(y[l-n:])

		x := b.x.Col(c)
		copy(x[:n], input.Col(c))

		loadReal(b.work, x)
		if err := b.fft.Forward(b.work, b.work); err != nil {
			return fmt.Errorf("fir: forward FFT: %w", err)
		}
		for i, hv := range b.spectra[c] {
			b.work[i] *= hv
		}
		if err := b.fft.Inverse(b.work, b.work); err != nil {
			return fmt.Errorf("fir: inverse FFT: %w", err)
		}
		storeReal(b.re, b.work)
		vecmath.AddBlockInPlace(y, b.re)

		copy(output.Col(c), y[:n])
	}
	return nil
}

// Reset clears the input frame and the output accumulator. Taps and block
// size are kept.
func (b *BlockT[F, C]) Reset() {
	b.x.Zero()
	b.y.Zero()
}

// Configured reports whether both a block size and taps are set.
func (b *BlockT[F, C]) Configured() bool {
	return b.blockSize > 0 && !b.taps.Empty()
}

// BlockSize returns the configured block size, or 0.
func (b *BlockT[F, C]) BlockSize() int { return b.blockSize }

// ChannelCount returns the number of tap channels.
func (b *BlockT[F, C]) ChannelCount() int { return b.taps.Cols() }

// TapCount returns the filter length L.
func (b *BlockT[F, C]) TapCount() int { return b.taps.Rows() }

// PadTaps returns a copy of h zero-extended by blockSize-1 rows, so that a
// BlockT with that block size computes the exact linear convolution with
// the original taps.
func PadTaps[F core.Float](h *core.Matrix[F], blockSize int) *core.Matrix[F] {
	if blockSize < 1 {
		blockSize = 1
	}
	out := core.NewMatrix[F](h.Rows()+blockSize-1, h.Cols())
	for c := range h.Cols() {
		copy(out.Col(c), h.Col(c))
	}
	return out
}

func growComplex[C algofft.Complex](buf []C, n int) []C {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]C, n)
}

func loadReal[F algofft.Float, C algofft.Complex](dst []C, src []F) {
	switch d := any(dst).(type) {
	case []complex128:
		for i, v := range src {
			d[i] = complex(float64(v), 0)
		}
	case []complex64:
		for i, v := range src {
			d[i] = complex(float32(v), 0)
		}
	}
}

func storeReal[F algofft.Float, C algofft.Complex](dst []F, src []C) {
	switch s := any(src).(type) {
	case []complex128:
		for i := range dst {
			dst[i] = F(real(s[i]))
		}
	case []complex64:
		for i := range dst {
			dst[i] = F(real(s[i]))
		}
	}
}
