// Package word enumerates words over the control alphabet {x0, ..., xm}
// up to a truncation depth. The ordering it produces is the single source
// of truth for the row index shared by the iterated-integral and
// Lie-derivative recursions; both must consume the same Index or their
// tables cannot be combined.
package word

import (
	"fmt"
	"strings"
)

// Symbol identifies one letter of the alphabet. Symbol 0 is the drift
// channel x0, symbols 1..m the controlled channels.
type Symbol int

// Drift is the symbol of the autonomous (drift) channel.
const Drift Symbol = 0

// Word is an immutable sequence of symbols. The zero-length word is the
// empty word, the multiplicative identity of the free monoid.
type Word []Symbol

// Len returns the number of symbols in the word.
func (w Word) Len() int { return len(w) }

// Equal reports whether two words have identical symbol sequences.
func (w Word) Equal(v Word) bool {
	if len(w) != len(v) {
		return false
	}
	for i := range w {
		if w[i] != v[i] {
			return false
		}
	}
	return true
}

// String renders the word as x0x1..., or "e" for the empty word.
func (w Word) String() string {
	if len(w) == 0 {
		return "e"
	}
	var b strings.Builder
	for _, s := range w {
		fmt.Fprintf(&b, "x%d", int(s))
	}
	return b.String()
}

func (w Word) key() string {
	r := make([]rune, len(w))
	for i, s := range w {
		r[i] = rune(s)
	}
	return string(r)
}

// prepend returns the word s·w as a fresh slice.
func prepend(s Symbol, w Word) Word {
	out := make(Word, len(w)+1)
	out[0] = s
	copy(out[1:], w)
	return out
}

// Index holds all words of length 0..depth over an alphabet of the given
// size, in the canonical order the engines index their tables by.
//
// Layer k+1 is built by prepending every symbol to every layer-k word,
// the prepended symbol varying slowest: the layer splits into alphabetSize
// contiguous blocks, block i holding x_i·(layer-k words in layer order).
// Words that share a suffix are therefore contiguous inside a block, which
// is what lets both recursions reuse the previous layer without
// recomputation.
type Index struct {
	alphabet int
	depth    int
	layers   [][]Word
	offsets  []int // flat position of the first word of each layer
	position map[string]int
	total    int
}

// New enumerates all words of length 0..depth over alphabetSize symbols.
// The enumeration is deterministic; two calls with equal arguments produce
// identical orderings.
func New(alphabetSize, depth int) (*Index, error) {
	if alphabetSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrAlphabetSize, alphabetSize)
	}
	if depth < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrDepth, depth)
	}

	idx := &Index{
		alphabet: alphabetSize,
		depth:    depth,
		layers:   make([][]Word, depth+1),
		offsets:  make([]int, depth+1),
		position: make(map[string]int),
	}

	idx.layers[0] = []Word{{}}
	for k := 0; k < depth; k++ {
		prev := idx.layers[k]
		next := make([]Word, 0, alphabetSize*len(prev))
		for s := 0; s < alphabetSize; s++ {
			for _, w := range prev {
				next = append(next, prepend(Symbol(s), w))
			}
		}
		idx.layers[k+1] = next
	}

	pos := 0
	for k, layer := range idx.layers {
		idx.offsets[k] = pos
		for _, w := range layer {
			idx.position[w.key()] = pos
			pos++
		}
	}
	idx.total = pos
	return idx, nil
}

// AlphabetSize returns the number of symbols, drift channel included.
func (idx *Index) AlphabetSize() int { return idx.alphabet }

// Depth returns the truncation depth N.
func (idx *Index) Depth() int { return idx.depth }

// Len returns the total number of words, sum over k of alphabetSize^k.
func (idx *Index) Len() int { return idx.total }

// Layer returns the words of length k in canonical order. The returned
// slice is shared; callers must not modify it. Out-of-range k yields nil.
func (idx *Index) Layer(k int) []Word {
	if k < 0 || k > idx.depth {
		return nil
	}
	return idx.layers[k]
}

// LayerOffset returns the flat position of the first length-k word.
func (idx *Index) LayerOffset(k int) int {
	if k < 0 || k > idx.depth {
		return -1
	}
	return idx.offsets[k]
}

// At returns the word at a flat canonical position.
func (idx *Index) At(pos int) Word {
	if pos < 0 || pos >= idx.total {
		return nil
	}
	k := 0
	for k < idx.depth && pos >= idx.offsets[k+1] {
		k++
	}
	return idx.layers[k][pos-idx.offsets[k]]
}

// Position returns the flat canonical position of w, if enumerated.
func (idx *Index) Position(w Word) (int, bool) {
	pos, ok := idx.position[w.key()]
	return pos, ok
}

// Words returns every word in flat canonical order, grouped by length.
// The returned slice is freshly allocated; the words themselves are shared.
func (idx *Index) Words() []Word {
	out := make([]Word, 0, idx.total)
	for _, layer := range idx.layers {
		out = append(out, layer...)
	}
	return out
}

// Compatible reports whether another index was built with the same
// alphabet size and depth, and therefore with the identical ordering.
func (idx *Index) Compatible(other *Index) bool {
	return other != nil && idx.alphabet == other.alphabet && idx.depth == other.depth
}
