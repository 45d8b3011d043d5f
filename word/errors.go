package word

import "errors"

var (
	// ErrAlphabetSize indicates an alphabet with fewer than one symbol.
	ErrAlphabetSize = errors.New("word: alphabet size must be at least 1")
	// ErrDepth indicates a negative truncation depth.
	ErrDepth = errors.New("word: truncation depth must be non-negative")
)
