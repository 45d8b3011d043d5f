package system

import "errors"

var (
	// ErrNoState indicates a model with an empty state vector.
	ErrNoState = errors.New("system: at least one state variable is required")
	// ErrStateName indicates duplicate or empty state variable names.
	ErrStateName = errors.New("system: state variable names must be unique and non-empty")
	// ErrFieldDimension indicates a vector field whose component count
	// differs from the state dimension.
	ErrFieldDimension = errors.New("system: vector field dimension mismatch")
	// ErrNoOutput indicates a missing output function.
	ErrNoOutput = errors.New("system: output function is required")
	// ErrDimension indicates mismatched model matrix dimensions.
	ErrDimension = errors.New("system: matrix dimensions do not match")
)
