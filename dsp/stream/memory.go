package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
)

// ErrSinkFull is returned by a SliceSink that reached its capacity limit.
var ErrSinkFull = errors.New("stream: sink capacity exhausted")

// SliceSource serves frames from in-memory channel slices.
type SliceSource[F core.Float] struct {
	channels [][]F
	frames   int
	pos      int
	// MaxRead limits the frames returned per Read call to emulate a device or
	// decoder that delivers short reads. Zero means unlimited.
	MaxRead int
}

// NewSliceSource returns a source over the given channels. The slices are not
// copied. The stream length is the length of the shortest channel.
func NewSliceSource[F core.Float](channels ...[]F) *SliceSource[F] {
	frames := 0
	for i, c := range channels {
		if i == 0 || len(c) < frames {
			frames = len(c)
		}
	}
	return &SliceSource[F]{channels: channels, frames: frames}
}

// Channels implements Source.
func (s *SliceSource[F]) Channels() int { return len(s.channels) }

// Remaining returns the number of frames not yet read.
func (s *SliceSource[F]) Remaining() int { return s.frames - s.pos }

// Read implements Source.
func (s *SliceSource[F]) Read(dst [][]F) (int, error) {
	if len(dst) != len(s.channels) {
		return 0, fmt.Errorf("%w: got %d buffers for %d channels", ErrChannelMismatch, len(dst), len(s.channels))
	}
	if s.pos >= s.frames {
		return 0, io.EOF
	}
	n := s.frames - s.pos
	if len(dst) > 0 && len(dst[0]) < n {
		n = len(dst[0])
	}
	if s.MaxRead > 0 && n > s.MaxRead {
		n = s.MaxRead
	}
	for c := range dst {
		copy(dst[c][:n], s.channels[c][s.pos:s.pos+n])
	}
	s.pos += n
	return n, nil
}

// SliceSink collects written samples in memory.
type SliceSink[F core.Float] struct {
	Samples []F
	// Limit caps the total number of samples accepted. Zero means unlimited.
	Limit int
}

// Write implements Sink.
func (s *SliceSink[F]) Write(p []F) (int, error) {
	n := len(p)
	if s.Limit > 0 && len(s.Samples)+n > s.Limit {
		n = s.Limit - len(s.Samples)
	}
	s.Samples = append(s.Samples, p[:n]...)
	if n < len(p) {
		return n, ErrSinkFull
	}
	return n, nil
}
