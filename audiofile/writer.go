package audiofile

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/dsp/stream"
)

// WAVWriter encodes float samples in [-1, 1] as integer PCM WAV. Samples
// outside that range are clipped.
type WAVWriter struct {
	enc      *wav.Encoder
	file     io.Closer
	buf      *audio.IntBuffer
	channels int
	full     float64 // 2^(bitDepth-1)
	bias     int
}

var _ stream.Sink[float64] = (*WAVWriter)(nil)

// CreateWAV creates the file at path and returns a writer for it. Close
// finalizes the header and closes the file.
func CreateWAV(path string, sampleRate, bitDepth, channels int) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	w, err := NewWAVWriter(f, sampleRate, bitDepth, channels)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

// NewWAVWriter returns a writer encoding to ws. Close finalizes the header
// but does not close ws.
func NewWAVWriter(ws io.WriteSeeker, sampleRate, bitDepth, channels int) (*WAVWriter, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if channels < 1 {
		return nil, fmt.Errorf("audiofile: channel count must be positive, got %d", channels)
	}

	w := &WAVWriter{
		enc: wav.NewEncoder(ws, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		channels: channels,
		full:     float64(int64(1) << (bitDepth - 1)),
	}
	if bitDepth == 8 {
		w.bias = 128
	}
	return w, nil
}

func (w *WAVWriter) quantize(x float64) int {
	v := math.Round(x * w.full)
	v = math.Max(-w.full, math.Min(w.full-1, v))
	return int(v) + w.bias
}

func growInts(buf []int, n int) []int {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]int, n)
}

// Write implements stream.Sink for mono files: every sample is one frame.
func (w *WAVWriter) Write(p []float64) (int, error) {
	if w.channels != 1 {
		return 0, fmt.Errorf("%w: Write needs a mono file, have %d channels", stream.ErrChannelMismatch, w.channels)
	}
	w.buf.Data = growInts(w.buf.Data, len(p))
	for i, x := range p {
		w.buf.Data[i] = w.quantize(x)
	}
	if err := w.enc.Write(w.buf); err != nil {
		return 0, fmt.Errorf("audiofile: encode: %w", err)
	}
	return len(p), nil
}

// WriteFrames interleaves and writes a block with one column per channel.
func (w *WAVWriter) WriteFrames(m *core.Matrix[float64]) error {
	if m.Cols() != w.channels {
		return fmt.Errorf("%w: block has %d channels, file has %d", stream.ErrChannelMismatch, m.Cols(), w.channels)
	}
	frames := m.Rows()
	w.buf.Data = growInts(w.buf.Data, frames*w.channels)
	for c := range w.channels {
		for i, x := range m.Col(c) {
			w.buf.Data[i*w.channels+c] = w.quantize(x)
		}
	}
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("audiofile: encode: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file if the writer owns it.
func (w *WAVWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		if w.file != nil {
			w.file.Close()
		}
		return fmt.Errorf("audiofile: finalize: %w", err)
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
