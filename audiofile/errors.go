package audiofile

import "errors"

var (
	// ErrUnknownFormat is returned when no decoder is registered for a file
	// extension.
	ErrUnknownFormat = errors.New("audiofile: unknown format")
	// ErrInvalidFile is returned when a file cannot be parsed by its decoder.
	ErrInvalidFile = errors.New("audiofile: invalid file")
	// ErrUnsupportedEncoding is returned for sample encodings the decoder
	// cannot convert, such as compressed or floating point WAV.
	ErrUnsupportedEncoding = errors.New("audiofile: unsupported encoding")
	// ErrChannelOutOfRange is returned when a requested channel does not
	// exist in the file.
	ErrChannelOutOfRange = errors.New("audiofile: channel out of range")
	// ErrUnsupportedBitDepth is returned by the WAV writer for bit depths
	// other than 8, 16, 24 and 32.
	ErrUnsupportedBitDepth = errors.New("audiofile: unsupported bit depth")
)
