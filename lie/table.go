package lie

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hammal/fliess/expr"
	"github.com/hammal/fliess/word"
)

// Table holds the symbolic Lie derivative for every word, in the
// canonical order of its word index. Immutable once returned.
type Table struct {
	idx   *word.Index
	vars  []string
	exprs []expr.Expr
}

// Index returns the word index the table is ordered by.
func (t *Table) Index() *word.Index { return t.idx }

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.exprs) }

// States returns the state variable names the entries range over.
func (t *Table) States() []string { return t.vars }

// Expr returns the entry at a flat canonical position.
func (t *Table) Expr(pos int) expr.Expr {
	if pos < 0 || pos >= len(t.exprs) {
		return nil
	}
	return t.exprs[pos]
}

// Value returns the symbolic entry for a word, if enumerated.
func (t *Table) Value(w word.Word) (expr.Expr, bool) {
	pos, ok := t.idx.Position(w)
	if !ok {
		return nil, false
	}
	return t.exprs[pos], true
}

// At substitutes a numeric state into every entry. This is the one-off
// symbolic path; for repeated evaluation use Compile once and reuse the
// evaluator.
func (t *Table) At(state []float64) (*Coefficients, error) {
	if len(state) != len(t.vars) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrStateDimension, len(state), len(t.vars))
	}
	env := make(map[string]float64, len(t.vars))
	for i, v := range t.vars {
		env[v] = state[i]
	}
	values := mat.NewVecDense(len(t.exprs), nil)
	for pos, e := range t.exprs {
		values.SetVec(pos, e.Eval(env))
	}
	return &Coefficients{idx: t.idx, values: values}, nil
}

// Compile lowers every entry to a closure once. The returned evaluator
// performs no symbolic work per call, which is what makes sweeping many
// initial states affordable.
func (t *Table) Compile() (*Evaluator, error) {
	fns := make([]expr.EvalFunc, len(t.exprs))
	for pos, e := range t.exprs {
		fn, err := expr.Compile(e, t.vars)
		if err != nil {
			return nil, fmt.Errorf("lie: compiling entry %s: %w", t.idx.At(pos), err)
		}
		fns[pos] = fn
	}
	return &Evaluator{idx: t.idx, dim: len(t.vars), fns: fns}, nil
}

// Evaluator is a compiled table: a pure function from state vector to
// coefficient vector, reusable across arbitrarily many states.
type Evaluator struct {
	idx *word.Index
	dim int
	fns []expr.EvalFunc
}

// Index returns the word index the coefficients are ordered by.
func (ev *Evaluator) Index() *word.Index { return ev.idx }

// At evaluates every coefficient at the given state.
func (ev *Evaluator) At(state []float64) (*Coefficients, error) {
	if len(state) != ev.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrStateDimension, len(state), ev.dim)
	}
	values := mat.NewVecDense(len(ev.fns), nil)
	for pos, fn := range ev.fns {
		values.SetVec(pos, fn(state))
	}
	return &Coefficients{idx: ev.idx, values: values}, nil
}

// Coefficients is a word-indexed numeric coefficient vector, (c, eta) in
// canonical order.
type Coefficients struct {
	idx    *word.Index
	values *mat.VecDense
}

// Index returns the word index the vector is ordered by.
func (c *Coefficients) Index() *word.Index { return c.idx }

// Len returns the number of coefficients.
func (c *Coefficients) Len() int { return c.values.Len() }

// At returns the coefficient at a flat canonical position.
func (c *Coefficients) At(pos int) float64 { return c.values.AtVec(pos) }

// Value returns the coefficient for a word, if enumerated.
func (c *Coefficients) Value(w word.Word) (float64, bool) {
	pos, ok := c.idx.Position(w)
	if !ok {
		return 0, false
	}
	return c.values.AtVec(pos), true
}

// Vector returns the underlying coefficient vector. Read-only by contract.
func (c *Coefficients) Vector() *mat.VecDense { return c.values }
