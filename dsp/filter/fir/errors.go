package fir

import "errors"

var (
	// ErrEmptyFilter is returned when filtering before a block size and a
	// non-empty tap set are configured, or when loading an empty tap set.
	ErrEmptyFilter = errors.New("fir: filter has no taps")
	// ErrBlockSizeMismatch is returned when an input or output block does not
	// have the configured number of rows.
	ErrBlockSizeMismatch = errors.New("fir: block size mismatch")
	// ErrChannelMismatch is returned when input, output and taps disagree on
	// the number of channels.
	ErrChannelMismatch = errors.New("fir: channel count mismatch")
	// ErrBlockSizeTooLarge is returned when the block size exceeds the
	// filter length.
	ErrBlockSizeTooLarge = errors.New("fir: block size exceeds filter length")
	// ErrInvalidBlockSize is returned for non-positive block sizes.
	ErrInvalidBlockSize = errors.New("fir: block size must be positive")
)
