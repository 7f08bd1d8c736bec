package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/dsp/stream"
)

// Source converts an interleaved Stream into planar frames. It implements
// stream.Source[float64].
type Source struct {
	stream   Stream
	closer   io.Closer
	channels int

	buf   []float64 // interleaved scratch
	carry []float64 // values of an incomplete frame from the last read
	eof   bool
}

var _ stream.Source[float64] = (*Source)(nil)

// NewSource wraps s. closer may be nil; otherwise Close closes it.
func NewSource(s Stream, closer io.Closer) *Source {
	return &Source{stream: s, closer: closer, channels: s.Channels()}
}

// Open decodes the file at path with the decoder registered for its
// extension in DefaultRegistry.
func Open(path string) (*Source, error) {
	return DefaultRegistry.Open(path)
}

// Open decodes the file at path with the decoder registered for its
// extension.
func (r *Registry) Open(path string) (*Source, error) {
	ext := filepath.Ext(path)
	dec, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	s, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audiofile: decode %s: %w", path, err)
	}
	if s.Channels() < 1 {
		f.Close()
		return nil, fmt.Errorf("%w: %s has no channels", ErrInvalidFile, path)
	}
	return NewSource(s, f), nil
}

// Channels implements stream.Source.
func (s *Source) Channels() int { return s.channels }

// SampleRate returns the sample rate in Hz.
func (s *Source) SampleRate() int { return s.stream.SampleRate() }

// Read implements stream.Source. It reads up to len(dst[0]) frames and
// splits them into the per-channel buffers in dst. A trailing incomplete
// frame at the end of the stream is dropped.
func (s *Source) Read(dst [][]float64) (int, error) {
	if len(dst) != s.channels {
		return 0, fmt.Errorf("%w: got %d buffers for %d channels", stream.ErrChannelMismatch, len(dst), s.channels)
	}
	frames := len(dst[0])
	if frames == 0 {
		return 0, nil
	}

	ch := s.channels
	need := frames * ch
	s.buf = core.EnsureLen(s.buf, need)
	n := copy(s.buf, s.carry)
	s.carry = s.carry[:0]

	for n < ch && !s.eof {
		m, err := s.stream.ReadInterleaved(s.buf[n:need])
		n += m
		if errors.Is(err, io.EOF) {
			s.eof = true
			break
		}
		if err != nil {
			return 0, fmt.Errorf("audiofile: read: %w", err)
		}
		if m == 0 {
			break
		}
	}

	whole := n / ch * ch
	s.carry = append(s.carry, s.buf[whole:n]...)
	if whole == 0 {
		if s.eof {
			return 0, io.EOF
		}
		return 0, nil
	}

	for i := range whole / ch {
		for c := range ch {
			dst[c][i] = s.buf[i*ch+c]
		}
	}
	return whole / ch, nil
}

// Close releases the underlying file.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// ReadAll reads src until end of stream and returns the frames as a matrix
// with one column per channel.
func ReadAll(src stream.Source[float64]) (*core.Matrix[float64], error) {
	const chunk = 4096

	ch := src.Channels()
	cols := make([][]float64, ch)
	bufs := make([][]float64, ch)
	for c := range bufs {
		bufs[c] = make([]float64, chunk)
	}

	for {
		n, err := src.Read(bufs)
		for c := range cols {
			cols[c] = append(cols[c], bufs[c][:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("audiofile: %w", io.ErrNoProgress)
		}
	}
	return core.MatrixFromColumns(cols...)
}

// LoadTaps reads the impulse response stored in the file at path. With
// channel < 0 every channel becomes one tap column; otherwise only the given
// channel is returned.
func LoadTaps(path string, channel int) (*core.Matrix[float64], error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if channel >= src.Channels() {
		return nil, fmt.Errorf("%w: channel %d of %d in %s", ErrChannelOutOfRange, channel, src.Channels(), path)
	}

	all, err := ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("audiofile: read taps from %s: %w", path, err)
	}
	if channel < 0 {
		return all, nil
	}
	return core.MatrixFromColumns(all.Col(channel))
}
