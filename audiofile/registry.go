package audiofile

import (
	"io"
	"sort"
	"strings"
	"sync"
)

// Stream is a decoded audio stream delivering interleaved samples.
type Stream interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (e.g. 1=mono, 2=stereo).
	Channels() int
	// ReadInterleaved fills dst with interleaved samples in [-1, 1] and
	// returns the number of values written (not frames). It returns
	// 0, io.EOF once the stream is finished.
	ReadInterleaved(dst []float64) (int, error)
}

// Decoder constructs a Stream from an input reader.
type Decoder interface {
	Decode(r io.ReadSeeker) (Stream, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.ReadSeeker) (Stream, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(r io.ReadSeeker) (Stream, error) { return f(r) }

// Registry maps file extensions to decoders. It is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	codecs map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// DefaultRegistry holds the built-in WAV, MP3 and Ogg Vorbis decoders.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", DecoderFunc(decodeWAV))
	r.Register("wave", DecoderFunc(decodeWAV))
	r.Register("mp3", DecoderFunc(decodeMP3))
	r.Register("ogg", DecoderFunc(decodeVorbis))
	r.Register("oga", DecoderFunc(decodeVorbis))
	return r
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Register adds or replaces the decoder for an extension. The extension is
// matched case-insensitively, with or without a leading dot.
func (r *Registry) Register(ext string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[normalizeExt(ext)] = d
}

// Get returns the decoder registered for ext.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// Formats returns the registered extensions in sorted order.
func (r *Registry) Formats() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
