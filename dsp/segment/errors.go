package segment

import "errors"

var (
	// ErrFactorTooLarge is returned when the overlap factor is 1 or more.
	ErrFactorTooLarge = errors.New("segment: overlap factor must be below 1")
	// ErrInvalidFactor is returned for negative or NaN overlap factors.
	ErrInvalidFactor = errors.New("segment: overlap factor must be in [0, 1)")
	// ErrChannelCount is returned when the requested channel does not exist
	// in the source.
	ErrChannelCount = errors.New("segment: channel out of range")
	// ErrFileSizeMismatch is returned when the source ends before a
	// non-final window could be filled.
	ErrFileSizeMismatch = errors.New("segment: source shorter than requested sample count")
	// ErrSinkSizeMismatch is returned when the sink accepts fewer samples
	// than offered.
	ErrSinkSizeMismatch = errors.New("segment: sink rejected samples")
	// ErrNoData is returned by UnloadData before any successful LoadData.
	ErrNoData = errors.New("segment: no windows loaded")
	// ErrInvalidWindowSize is returned by LoadData for a non-positive
	// window size.
	ErrInvalidWindowSize = errors.New("segment: window size must be positive")
	// ErrInvalidSampleCount is returned by LoadData for a non-positive
	// sample count.
	ErrInvalidSampleCount = errors.New("segment: sample count must be positive")
)
