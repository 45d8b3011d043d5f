package system

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hammal/fliess/expr"
)

// stateNames returns z1..zn.
func stateNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("z%d", i+1)
	}
	return names
}

func zeroField(n int) VectorField {
	g := make(VectorField, n)
	for i := range g {
		g[i] = expr.Zero
	}
	return g
}

// NewSingleIntegrator returns the one-state model z1' = u1(t), h = z1.
func NewSingleIntegrator() (*ControlAffine, error) {
	return NewControlAffine(
		stateNames(1),
		zeroField(1),
		[]VectorField{{expr.One}},
		expr.Var("z1"),
	)
}

// NewIntegratorChain returns an n-stage integrator chain with a single
// input driving the first stage and each stage feeding the next with the
// given gain:
//
//	z1' = u1(t), zk' = gain * z(k-1), h = zn
func NewIntegratorChain(n int, gain float64) (*ControlAffine, error) {
	if n < 1 {
		return nil, ErrNoState
	}
	names := stateNames(n)

	drift := make(VectorField, n)
	drift[0] = expr.Zero
	for i := 1; i < n; i++ {
		drift[i] = expr.Mul(expr.Const(gain), expr.Var(names[i-1]))
	}

	g1 := zeroField(n)
	g1[0] = expr.One

	return NewControlAffine(names, drift, []VectorField{g1}, expr.Var(names[n-1]))
}

// NewBilinear builds the single-input bilinear model
//
//	x' = A x + u(t) (b + Ab x), h = sum of states
func NewBilinear(A, Ab mat.Matrix, b mat.Vector) (*ControlAffine, error) {
	n, cols := A.Dims()
	if n != cols {
		return nil, fmt.Errorf("%w: A is %dx%d", ErrDimension, n, cols)
	}
	if r, c := Ab.Dims(); r != n || c != n {
		return nil, fmt.Errorf("%w: Ab is %dx%d, want %dx%d", ErrDimension, r, c, n, n)
	}
	if b.Len() != n {
		return nil, fmt.Errorf("%w: b has length %d, want %d", ErrDimension, b.Len(), n)
	}
	names := stateNames(n)

	linearCombination := func(m mat.Matrix, row int) expr.Expr {
		terms := make([]expr.Expr, 0, n)
		for col := 0; col < n; col++ {
			terms = append(terms, expr.Mul(expr.Const(m.At(row, col)), expr.Var(names[col])))
		}
		return expr.Sum(terms...)
	}

	drift := make(VectorField, n)
	g1 := make(VectorField, n)
	outTerms := make([]expr.Expr, n)
	for row := 0; row < n; row++ {
		drift[row] = linearCombination(A, row)
		g1[row] = expr.Add(expr.Const(b.AtVec(row)), linearCombination(Ab, row))
		outTerms[row] = expr.Var(names[row])
	}

	return NewControlAffine(names, drift, []VectorField{g1}, expr.Sum(outTerms...))
}
