package iterint

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hammal/fliess/word"
)

// Table maps every word of length <= N to its iterated-integral sample
// array. Rows follow the canonical ordering of the word index the table
// was built with. Immutable once returned by Engine.Compute.
type Table struct {
	idx     *word.Index
	samples int
	dt      float64
	layers  []*mat.Dense // layers[k]: alphabet^k rows of T samples
}

// Index returns the word index the table is ordered by.
func (t *Table) Index() *word.Index { return t.idx }

// Len returns the number of words in the table.
func (t *Table) Len() int { return t.idx.Len() }

// Samples returns the number of grid points per entry.
func (t *Table) Samples() int { return t.samples }

// Dt returns the grid step the entries were integrated on.
func (t *Table) Dt() float64 { return t.dt }

// Layer returns the depth-k layer matrix, one row per length-k word in
// canonical order. Read-only by contract; nil when k is out of range.
func (t *Table) Layer(k int) *mat.Dense {
	if k < 0 || k >= len(t.layers) {
		return nil
	}
	return t.layers[k]
}

// Row returns the sample array at a flat canonical position. The slice
// aliases the layer storage; callers must not modify it.
func (t *Table) Row(pos int) []float64 {
	if pos < 0 || pos >= t.idx.Len() {
		return nil
	}
	k := 0
	for k < t.idx.Depth() && pos >= t.idx.LayerOffset(k+1) {
		k++
	}
	return t.layers[k].RawRowView(pos - t.idx.LayerOffset(k))
}

// Value returns the sample array for a word, if enumerated.
func (t *Table) Value(w word.Word) ([]float64, bool) {
	pos, ok := t.idx.Position(w)
	if !ok {
		return nil, false
	}
	return t.Row(pos), true
}
