package segment

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/dsp/stream"
	"github.com/cwbudde/algo-blockdsp/dsp/window"
	"github.com/cwbudde/algo-blockdsp/internal/vecmath"
)

const (
	// DefaultOverlap is the overlap factor used by NewDefault.
	DefaultOverlap = 0.5
	// DefaultWindowSize is the window size reported before the first load.
	DefaultWindowSize = 2048
)

// OverlapAdd segments a stream into overlapping windows and reconstructs it.
//
// The engine is not safe for concurrent use. Each LoadData call replaces the
// window matrix with a fresh snapshot of the source.
type OverlapAdd[F core.Float] struct {
	factor float64

	// Geometry of the loaded matrix
	windowSize int // W
	overlap    int // N = floor(W*factor)
	step       int // M = W - N

	// Window matrix, W x windowCount, one column per window
	data *core.Matrix[F]
}

// New returns an engine with the given overlap factor.
func New[F core.Float](factor float64) (*OverlapAdd[F], error) {
	switch {
	case math.IsNaN(factor) || factor < 0:
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFactor, factor)
	case factor >= 1:
		return nil, fmt.Errorf("%w: got %v", ErrFactorTooLarge, factor)
	}

	o := &OverlapAdd[F]{
		factor: factor,
		data:   core.NewMatrix[F](0, 0),
	}
	o.setGeometry(DefaultWindowSize)
	return o, nil
}

// NewDefault returns an engine with DefaultOverlap.
func NewDefault[F core.Float]() *OverlapAdd[F] {
	o := &OverlapAdd[F]{
		factor: DefaultOverlap,
		data:   core.NewMatrix[F](0, 0),
	}
	o.setGeometry(DefaultWindowSize)
	return o
}

// Geometry returns the overlap length N and step M for window size w.
func Geometry(w int, factor float64) (n, m int) {
	n = int(math.Floor(float64(w) * factor))
	if n >= w {
		n = w - 1
	}
	if n < 0 {
		n = 0
	}
	return n, w - n
}

func (o *OverlapAdd[F]) setGeometry(w int) {
	o.windowSize = w
	o.overlap, o.step = Geometry(w, o.factor)
}

// LoadData reads sampleCount samples of one channel from src into the window
// matrix.
//
// Window 0 reads windowSize samples. Every later window starts with the last
// N rows of its predecessor and reads M new samples. The final window may
// read up to N samples past sampleCount to fill its trailing overlap region;
// reading never goes further than that.
//
// If the source ends inside the final window the missing rows are zero
// filled. The number of those rows that lie before sampleCount is returned
// as shortfall with a nil error. A source that ends before any earlier
// window is complete yields ErrFileSizeMismatch and leaves the previously
// loaded matrix in place.
func (o *OverlapAdd[F]) LoadData(src stream.Source[F], windowSize, sampleCount, channel int) (shortfall int, err error) {
	if windowSize <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWindowSize, windowSize)
	}
	if sampleCount <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSampleCount, sampleCount)
	}
	chans := src.Channels()
	if channel < 0 || channel >= chans {
		return 0, fmt.Errorf("%w: channel %d of %d", ErrChannelCount, channel, chans)
	}

	n, m := Geometry(windowSize, o.factor)
	count := (sampleCount + m - 1) / m
	limit := sampleCount + n

	data := core.NewMatrix[F](windowSize, count)
	bufs := make([][]F, chans)
	views := make([][]F, chans)
	scratch := make([]F, windowSize*chans)
	for c := range bufs {
		bufs[c] = scratch[c*windowSize : (c+1)*windowSize]
	}

	exhausted := false
	for i := range count {
		col := data.Col(i)
		start := 0
		if i > 0 {
			copy(col[:n], data.Col(i-1)[m:])
			start = n
		}

		// absolute stream positions of the rows this window owns
		first := i*m + start
		end := i*m + windowSize
		want := min(end, limit) - first

		got := 0
		if !exhausted && want > 0 {
			for c := range views {
				views[c] = bufs[c][:want]
			}
			views[channel] = col[start : start+want]

			got, err = stream.ReadFull(src, views)
			switch {
			case err == nil:
			case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
				exhausted = true
			default:
				return 0, fmt.Errorf("segment: read window %d: %w", i, err)
			}
		}

		missing := min(end, sampleCount) - (first + got)
		if missing <= 0 {
			continue
		}
		if i < count-1 {
			return 0, fmt.Errorf("%w: window %d of %d is missing %d samples",
				ErrFileSizeMismatch, i, count, missing)
		}
		shortfall = missing
	}

	o.data = data
	o.setGeometry(windowSize)
	return shortfall, nil
}

// UnloadData writes the crossfaded reconstruction of the window matrix to
// sink. The output is WindowCount()*Step() + OverlapLen() samples long.
//
// When M >= N each window contributes one Write of M samples: its head
// crossfaded with the previous window's tail, followed by its unweighted
// interior. The final window's tail is flushed unweighted in one last Write
// of N samples. With an overlap factor above one half the windows overlap
// more than pairwise; the same crossfade tapers are then combined by
// normalized overlap-add and the whole result is written at once.
func (o *OverlapAdd[F]) UnloadData(sink stream.Sink[F]) error {
	if o.data.Empty() {
		return ErrNoData
	}
	if o.step < o.overlap {
		return o.unloadWeighted(sink)
	}

	n, m := o.overlap, o.step
	up, down := window.Crossfade[F](n)
	tail := make([]F, n)
	buf := make([]F, m)

	count := o.data.Cols()
	for i := range count {
		col := o.data.Col(i)
		if i == 0 {
			copy(buf[:n], col[:n])
		} else {
			vecmath.MulAddBlock(buf[:n], col[:n], up, tail)
		}
		copy(buf[n:], col[n:m])
		if err := write(sink, buf); err != nil {
			return err
		}
		vecmath.MulBlock(tail, col[m:], down)
	}

	if n == 0 {
		return nil
	}
	return write(sink, o.data.Col(count-1)[m:])
}

func (o *OverlapAdd[F]) unloadWeighted(sink stream.Sink[F]) error {
	n, m, w := o.overlap, o.step, o.windowSize
	count := o.data.Cols()
	total := count*m + n

	out := make([]F, total)
	norm := make([]F, total)

	for i := range count {
		weights, err := window.Taper[F](w, n, i > 0, i < count-1)
		if err != nil {
			return err
		}

		pos := i * m
		vecmath.MulAddBlock(out[pos:pos+w], o.data.Col(i), weights, out[pos:pos+w])
		vecmath.AddBlockInPlace(norm[pos:pos+w], weights)
	}

	for p := range out {
		out[p] /= norm[p]
	}
	return write(sink, out)
}

func write[F core.Float](sink stream.Sink[F], p []F) error {
	written, err := sink.Write(p)
	if err != nil {
		return fmt.Errorf("%w: wrote %d of %d samples: %w", ErrSinkSizeMismatch, written, len(p), err)
	}
	if written != len(p) {
		return fmt.Errorf("%w: wrote %d of %d samples", ErrSinkSizeMismatch, written, len(p))
	}
	return nil
}

// OverlapFactor returns the configured overlap factor.
func (o *OverlapAdd[F]) OverlapFactor() float64 { return o.factor }

// WindowSize returns W of the loaded matrix, or DefaultWindowSize before the
// first load.
func (o *OverlapAdd[F]) WindowSize() int { return o.windowSize }

// WindowCount returns the number of windows in the loaded matrix.
func (o *OverlapAdd[F]) WindowCount() int { return o.data.Cols() }

// OverlapLen returns N, the number of samples shared by adjacent windows.
func (o *OverlapAdd[F]) OverlapLen() int { return o.overlap }

// Step returns M, the distance between the starts of adjacent windows.
func (o *OverlapAdd[F]) Step() int { return o.step }

// Window returns column i of the window matrix. The slice aliases the
// matrix, so modifications are picked up by UnloadData.
func (o *OverlapAdd[F]) Window(i int) []F { return o.data.Col(i) }

// Data returns a copy of the window matrix.
func (o *OverlapAdd[F]) Data() *core.Matrix[F] { return o.data.Copy() }

// MaxAbs returns the largest absolute sample value in the window matrix.
func (o *OverlapAdd[F]) MaxAbs() F {
	var peak F
	for j := range o.data.Cols() {
		peak = max(peak, vecmath.MaxAbs(o.data.Col(j)))
	}
	return peak
}

// Dense returns the window matrix as a gonum matrix, or nil if nothing is
// loaded.
func (o *OverlapAdd[F]) Dense() *mat.Dense { return o.data.Dense() }
