package audiofile

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

type wavStream struct {
	dec   *wav.Decoder
	buf   *audio.IntBuffer
	scale float64
	bias  int
}

func decodeWAV(r io.ReadSeeker) (Stream, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
		return nil, ErrInvalidFile
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: WAV format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	s := &wavStream{
		dec: dec,
		buf: &audio.IntBuffer{Format: dec.Format()},
	}
	switch dec.BitDepth {
	case 8:
		// 8-bit WAV samples are unsigned
		s.scale, s.bias = 1.0/128, 128
	case 16, 24, 32:
		s.scale = 1 / float64(int64(1)<<(dec.BitDepth-1))
	default:
		return nil, fmt.Errorf("%w: %d-bit WAV", ErrUnsupportedEncoding, dec.BitDepth)
	}
	return s, nil
}

func (s *wavStream) SampleRate() int { return int(s.dec.SampleRate) }
func (s *wavStream) Channels() int   { return int(s.dec.NumChans) }

func (s *wavStream) ReadInterleaved(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("wav: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	for i, v := range s.buf.Data[:n] {
		dst[i] = float64(v-s.bias) * s.scale
	}
	return n, nil
}
