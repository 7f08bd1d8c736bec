// Package stream defines the sample source and sink contracts consumed by the
// block engines, plus in-memory implementations.
//
// A [Source] delivers planar multi-channel frames. End of stream is signalled
// with io.EOF, which is distinct from a short read: a source may return fewer
// frames than requested with a nil error, and callers that need an exact
// count use [ReadFull].
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
)

// ErrChannelMismatch is returned when a destination does not provide one
// buffer per source channel.
var ErrChannelMismatch = errors.New("stream: channel count mismatch")

// Source reads planar multi-channel frames.
type Source[F core.Float] interface {
	// Channels returns the number of channels delivered per frame.
	Channels() int
	// Read fills up to len(dst[0]) frames of every channel buffer in dst and
	// returns the number of frames read. len(dst) must equal Channels() and
	// all buffers must have the same length. Read returns 0, io.EOF once the
	// stream is exhausted.
	Read(dst [][]F) (int, error)
}

// Sink accepts a single continuous sequence of samples.
type Sink[F core.Float] interface {
	// Write writes p and returns the number of samples accepted. A count
	// smaller than len(p) must come with a non-nil error.
	Write(p []F) (int, error)
}

// ReadFull reads exactly len(dst[0]) frames from src.
// On return n == len(dst[0]) if and only if err == nil. If the source ends
// before anything was read the error is io.EOF; if it ends after a partial
// read the error is io.ErrUnexpectedEOF.
func ReadFull[F core.Float](src Source[F], dst [][]F) (int, error) {
	if len(dst) != src.Channels() {
		return 0, fmt.Errorf("%w: got %d buffers for %d channels", ErrChannelMismatch, len(dst), src.Channels())
	}
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst[0])
	views := make([][]F, len(dst))
	n := 0
	for n < want {
		for c := range dst {
			views[c] = dst[c][n:want]
		}
		m, err := src.Read(views)
		n += m
		if err != nil {
			if errors.Is(err, io.EOF) {
				if n == 0 {
					return 0, io.EOF
				}
				if n < want {
					return n, io.ErrUnexpectedEOF
				}
				return n, nil
			}
			return n, err
		}
		if m == 0 {
			return n, io.ErrNoProgress
		}
	}
	return n, nil
}
