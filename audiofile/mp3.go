package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Reader is the part of gomp3.Decoder used here.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// mp3Stream converts the 16-bit little-endian stereo PCM produced by go-mp3.
type mp3Stream struct {
	dec mp3Reader
	buf []byte
	odd []byte // a split sample from the previous read
}

func decodeMP3(r io.ReadSeeker) (Stream, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return &mp3Stream{dec: dec}, nil
}

func (s *mp3Stream) SampleRate() int { return s.dec.SampleRate() }

// Channels is always 2: go-mp3 decodes mono files to duplicated stereo.
func (s *mp3Stream) Channels() int { return 2 }

func (s *mp3Stream) ReadInterleaved(dst []float64) (int, error) {
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n := copy(s.buf, s.odd)
	s.odd = s.odd[:0]
	var err error
	for n < 2 && err == nil {
		var m int
		m, err = s.dec.Read(s.buf[n:])
		n += m
		if m == 0 && err == nil {
			err = io.ErrNoProgress
		}
	}
	if n < 2 {
		return 0, err
	}

	samples := n / 2
	for i := range samples {
		dst[i] = float64(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}
	s.odd = append(s.odd, s.buf[2*samples:n]...)

	if err == io.EOF {
		err = nil
	}
	return samples, err
}
