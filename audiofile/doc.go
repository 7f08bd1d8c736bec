// Package audiofile adapts audio files to the stream interfaces of the block
// engines.
//
// Decoders are looked up by file extension in a [Registry]. The default
// registry knows WAV (github.com/go-audio/wav), MP3
// (github.com/hajimehoshi/go-mp3) and Ogg Vorbis
// (github.com/jfreymuth/oggvorbis). [Open] returns a [Source] that implements
// stream.Source[float64] with samples scaled to [-1, 1].
//
// [WAVWriter] encodes processed blocks back to PCM WAV, and [LoadTaps] reads
// an impulse response file into a tap matrix for the FIR engine.
package audiofile
