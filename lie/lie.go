// Package lie computes the Lie-derivative coefficients L_eta h of an
// output function along the vector fields of a control-affine model, for
// every word eta up to the truncation depth.
//
// The recursion pairs with the iterated-integral one through the word
// ordering: an integral reads its word left to right with the first
// letter as the outermost integral, so the coefficient must apply the
// corresponding fields left to right, the first letter's field acting on
// h first. The entry for eta·x_j is therefore the gradient of the entry
// for the prefix eta, dotted with the field of the last letter x_j. Each
// depth is produced from the previous depth in one batched pass,
// differentiating every depth-k entry exactly once and reusing that
// gradient against every field.
package lie

import (
	"fmt"

	"github.com/hammal/fliess/expr"
	"github.com/hammal/fliess/system"
	"github.com/hammal/fliess/word"
)

// Differentiator is the gradient collaborator: given a scalar expression
// and the state variable vector, it returns the exact gradient. It must
// be side-effect free.
type Differentiator interface {
	Gradient(f expr.Expr, vars []string) ([]expr.Expr, error)
}

// Engine builds Lie-derivative tables.
type Engine struct {
	diff Differentiator
}

// NewEngine returns an engine using the given differentiator; nil selects
// the exact symbolic differentiator from the expr package.
func NewEngine(d Differentiator) *Engine {
	if d == nil {
		d = expr.Gradient{}
	}
	return &Engine{diff: d}
}

// Symbolic builds the full symbolic table: one expression per word, in
// the canonical order of idx. On any failure no table is returned; a
// partially built table never escapes.
func (e *Engine) Symbolic(sys *system.ControlAffine, idx *word.Index) (*Table, error) {
	if idx == nil {
		return nil, ErrNilIndex
	}
	if sys == nil {
		return nil, ErrNilSystem
	}
	if sys.Inputs()+1 != idx.AlphabetSize() {
		return nil, fmt.Errorf("%w: %d fields for alphabet size %d",
			ErrAlphabetMismatch, sys.Inputs()+1, idx.AlphabetSize())
	}

	vars := sys.States()
	n := len(vars)
	fields := sys.Fields()

	exprs := make([]expr.Expr, idx.Len())
	exprs[0] = sys.OutputExpr()

	for k := 0; k < idx.Depth(); k++ {
		layer := idx.Layer(k)
		base := idx.LayerOffset(k)
		wk := len(layer)

		// Differentiate each depth-k entry once; every extension of
		// that entry reuses the same gradient.
		grads := make([][]expr.Expr, wk)
		for j := 0; j < wk; j++ {
			grad, err := e.diff.Gradient(exprs[base+j], vars)
			if err != nil {
				return nil, &DifferentiationError{Depth: k + 1, Word: layer[j], Err: err}
			}
			if len(grad) != n {
				return nil, fmt.Errorf("%w: got %d components for %d states",
					ErrGradientDimension, len(grad), n)
			}
			grads[j] = grad
		}

		next := idx.LayerOffset(k + 1)
		for p, w := range idx.Layer(k + 1) {
			// The entry extends its length-k prefix along the
			// field of its last letter.
			prefixPos, ok := idx.Position(w[:len(w)-1])
			if !ok {
				return nil, fmt.Errorf("lie: prefix of %s not enumerated", w)
			}
			grad := grads[prefixPos-base]
			g := fields[w[len(w)-1]]

			terms := make([]expr.Expr, n)
			for c := 0; c < n; c++ {
				terms[c] = expr.Mul(grad[c], g[c])
			}
			exprs[next+p] = expr.Sum(terms...)
		}
	}

	return &Table{idx: idx, vars: vars, exprs: exprs}, nil
}

// Coefficients is the numeric one-shot path: build the symbolic table,
// compile it, and evaluate at z0.
func (e *Engine) Coefficients(sys *system.ControlAffine, idx *word.Index, z0 []float64) (*Coefficients, error) {
	table, err := e.Symbolic(sys, idx)
	if err != nil {
		return nil, err
	}
	ev, err := table.Compile()
	if err != nil {
		return nil, err
	}
	return ev.At(z0)
}
