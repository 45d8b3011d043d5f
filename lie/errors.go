package lie

import (
	"errors"
	"fmt"

	"github.com/hammal/fliess/word"
)

var (
	// ErrNilIndex indicates a missing word index.
	ErrNilIndex = errors.New("lie: word index is required")
	// ErrNilSystem indicates a missing control-affine model.
	ErrNilSystem = errors.New("lie: system is required")
	// ErrAlphabetMismatch indicates a model whose field count disagrees
	// with the word index's alphabet.
	ErrAlphabetMismatch = errors.New("lie: field count does not match alphabet")
	// ErrStateDimension indicates an evaluation state of the wrong length.
	ErrStateDimension = errors.New("lie: state dimension mismatch")
	// ErrGradientDimension indicates a differentiator returning a gradient
	// of the wrong length.
	ErrGradientDimension = errors.New("lie: gradient dimension mismatch")
)

// DifferentiationError reports a gradient the differentiation collaborator
// could not produce, naming the depth being built and the word whose entry
// was being differentiated.
type DifferentiationError struct {
	Depth int
	Word  word.Word
	Err   error
}

func (e *DifferentiationError) Error() string {
	return fmt.Sprintf("lie: differentiating entry %s for depth %d: %v", e.Word, e.Depth, e.Err)
}

func (e *DifferentiationError) Unwrap() error { return e.Err }
