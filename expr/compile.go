package expr

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownVariable indicates an expression referencing a variable that
// is not part of the compilation vector.
var ErrUnknownVariable = errors.New("expr: unknown variable")

// EvalFunc evaluates a compiled expression at a state vector whose
// coordinates follow the variable order given at compile time.
type EvalFunc func(state []float64) float64

// Compile lowers e to a closure evaluating against a positional state
// vector. Compilation walks the tree once; the returned closure performs
// no map lookups and no allocation per call.
func Compile(e Expr, vars []string) (EvalFunc, error) {
	slot := make(map[string]int, len(vars))
	for i, v := range vars {
		slot[v] = i
	}
	return compile(e, slot)
}

func compile(e Expr, slot map[string]int) (EvalFunc, error) {
	switch n := e.(type) {
	case constant:
		v := n.v
		return func([]float64) float64 { return v }, nil
	case variable:
		i, ok := slot[n.name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, n.name)
		}
		return func(state []float64) float64 { return state[i] }, nil
	case add:
		fa, err := compile(n.a, slot)
		if err != nil {
			return nil, err
		}
		fb, err := compile(n.b, slot)
		if err != nil {
			return nil, err
		}
		return func(state []float64) float64 { return fa(state) + fb(state) }, nil
	case mul:
		fa, err := compile(n.a, slot)
		if err != nil {
			return nil, err
		}
		fb, err := compile(n.b, slot)
		if err != nil {
			return nil, err
		}
		return func(state []float64) float64 { return fa(state) * fb(state) }, nil
	case pow:
		fb, err := compile(n.base, slot)
		if err != nil {
			return nil, err
		}
		p := n.exp
		return func(state []float64) float64 { return math.Pow(fb(state), p) }, nil
	case sin:
		fa, err := compile(n.arg, slot)
		if err != nil {
			return nil, err
		}
		return func(state []float64) float64 { return math.Sin(fa(state)) }, nil
	case cos:
		fa, err := compile(n.arg, slot)
		if err != nil {
			return nil, err
		}
		return func(state []float64) float64 { return math.Cos(fa(state)) }, nil
	case exp:
		fa, err := compile(n.arg, slot)
		if err != nil {
			return nil, err
		}
		return func(state []float64) float64 { return math.Exp(fa(state)) }, nil
	default:
		return nil, fmt.Errorf("expr: cannot compile %T", e)
	}
}

// Gradient is the exact-differentiation collaborator: it produces the
// gradient of a scalar expression with respect to a variable vector by
// differentiating coordinate by coordinate.
type Gradient struct{}

// Gradient returns [df/dvars[0], ..., df/dvars[n-1]].
func (Gradient) Gradient(f Expr, vars []string) ([]Expr, error) {
	grad := make([]Expr, len(vars))
	for i, v := range vars {
		grad[i] = f.Diff(v)
	}
	return grad, nil
}
