package signal

import "errors"

var (
	// ErrTimeStep indicates a non-positive sampling step.
	ErrTimeStep = errors.New("signal: time step must be positive")
	// ErrNoChannels indicates an input with no controlled channels.
	ErrNoChannels = errors.New("signal: at least one channel is required")
	// ErrTooFewSamples indicates a grid too short to integrate over.
	ErrTooFewSamples = errors.New("signal: at least two samples are required")
	// ErrSpan indicates a non-positive sampling span.
	ErrSpan = errors.New("signal: final time must be positive")
)
