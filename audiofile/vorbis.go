package audiofile

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader used here.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type vorbisStream struct {
	dec oggReader
	buf []float32
}

func decodeVorbis(r io.ReadSeeker) (Stream, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return &vorbisStream{dec: dec}, nil
}

func (s *vorbisStream) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisStream) Channels() int   { return s.dec.Channels() }

func (s *vorbisStream) ReadInterleaved(dst []float64) (int, error) {
	// oggvorbis only returns whole frames
	want := len(dst) / s.Channels() * s.Channels()
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	s.buf = s.buf[:want]

	n, err := s.dec.Read(s.buf)
	for i, v := range s.buf[:n] {
		dst[i] = float64(v)
	}
	if n > 0 && err == io.EOF {
		err = nil
	}
	return n, err
}
