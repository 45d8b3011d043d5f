package iterint

import "errors"

var (
	// ErrNilIndex indicates a missing word index.
	ErrNilIndex = errors.New("iterint: word index is required")
	// ErrNilInput indicates a missing input signal.
	ErrNilInput = errors.New("iterint: input signal is required")
	// ErrChannelCount indicates an input whose channel count disagrees
	// with the word index's alphabet.
	ErrChannelCount = errors.New("iterint: channel count does not match alphabet")
	// ErrRule indicates an unknown integration rule.
	ErrRule = errors.New("iterint: unknown integration rule")
)
