package lie

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammal/fliess/expr"
	"github.com/hammal/fliess/system"
	"github.com/hammal/fliess/word"
)

func singleIntegrator(t *testing.T) *system.ControlAffine {
	t.Helper()
	sys, err := system.NewSingleIntegrator()
	require.NoError(t, err)
	return sys
}

func TestEmptyWordIsOutput(t *testing.T) {
	sys := singleIntegrator(t)
	idx, err := word.New(2, 2)
	require.NoError(t, err)

	table, err := NewEngine(nil).Symbolic(sys, idx)
	require.NoError(t, err)

	h, ok := table.Value(word.Word{})
	require.True(t, ok)
	for _, z := range []float64{-2, 0, 1.5, 7} {
		assert.InDelta(t, z, h.Eval(map[string]float64{"z1": z}), 1e-12)
	}
}

func TestSingleIntegratorCoefficients(t *testing.T) {
	// h = z1, g1 = [1]: L_{x1} h = 1 everywhere, L_{x1 x1} h = 0.
	sys := singleIntegrator(t)
	idx, err := word.New(2, 2)
	require.NoError(t, err)

	coeffs, err := NewEngine(nil).Coefficients(sys, idx, []float64{0.3})
	require.NoError(t, err)

	c1, ok := coeffs.Value(word.Word{1})
	require.True(t, ok)
	assert.InDelta(t, 1, c1, 1e-12)

	c11, ok := coeffs.Value(word.Word{1, 1})
	require.True(t, ok)
	assert.InDelta(t, 0, c11, 1e-12)

	// Drift is zero, so every word containing x0 vanishes.
	for _, w := range []word.Word{{0}, {0, 1}, {1, 0}, {0, 0}} {
		c, ok := coeffs.Value(w)
		require.True(t, ok)
		assert.InDelta(t, 0, c, 1e-12, "word %s", w)
	}
}

func TestIntegratorChainCoefficients(t *testing.T) {
	// h = z2, z2' = z1, z1' = u: L_{x0} h = z1, L_{x1 x0} h = 1.
	sys, err := system.NewIntegratorChain(2, 1)
	require.NoError(t, err)
	idx, err := word.New(2, 2)
	require.NoError(t, err)

	table, err := NewEngine(nil).Symbolic(sys, idx)
	require.NoError(t, err)

	env := map[string]float64{"z1": 4, "z2": 9}
	lx0, ok := table.Value(word.Word{0})
	require.True(t, ok)
	assert.InDelta(t, 4, lx0.Eval(env), 1e-12)

	// Words read left to right, the first letter's field acting first:
	// x0 x1 applies g0 then g1, giving d(z1)/dz . g1 = 1.
	lx0x1, ok := table.Value(word.Word{0, 1})
	require.True(t, ok)
	assert.InDelta(t, 1, lx0x1.Eval(env), 1e-12)

	lx1x0, ok := table.Value(word.Word{1, 0})
	require.True(t, ok)
	assert.InDelta(t, 0, lx1x0.Eval(env), 1e-12)
}

func TestEvaluatorReuse(t *testing.T) {
	sys, err := system.NewIntegratorChain(2, 3)
	require.NoError(t, err)
	idx, err := word.New(2, 3)
	require.NoError(t, err)

	table, err := NewEngine(nil).Symbolic(sys, idx)
	require.NoError(t, err)
	ev, err := table.Compile()
	require.NoError(t, err)

	// The compiled evaluator must agree with direct substitution at
	// any number of states.
	for _, z1 := range []float64{-1, 0, 0.5, 2} {
		state := []float64{z1, 7}
		fromEval, err := ev.At(state)
		require.NoError(t, err)
		fromSubst, err := table.At(state)
		require.NoError(t, err)
		for pos := 0; pos < fromEval.Len(); pos++ {
			assert.InDelta(t, fromSubst.At(pos), fromEval.At(pos), 1e-12,
				"word %s at z1=%g", idx.At(pos), z1)
		}
	}
}

func TestPrefixStability(t *testing.T) {
	// Deepening the table must not change entries already computed at
	// lower depth.
	sys, err := system.NewIntegratorChain(2, 2)
	require.NoError(t, err)
	shallow, err := word.New(2, 2)
	require.NoError(t, err)
	deep, err := word.New(2, 4)
	require.NoError(t, err)

	tabShallow, err := NewEngine(nil).Symbolic(sys, shallow)
	require.NoError(t, err)
	tabDeep, err := NewEngine(nil).Symbolic(sys, deep)
	require.NoError(t, err)

	env := map[string]float64{"z1": 1.3, "z2": -0.4}
	for _, w := range shallow.Words() {
		a, ok := tabShallow.Value(w)
		require.True(t, ok)
		b, ok := tabDeep.Value(w)
		require.True(t, ok)
		assert.InDelta(t, a.Eval(env), b.Eval(env), 1e-12, "word %s", w)
	}
}

func TestStateDimensionChecked(t *testing.T) {
	sys := singleIntegrator(t)
	idx, _ := word.New(2, 1)
	table, err := NewEngine(nil).Symbolic(sys, idx)
	require.NoError(t, err)

	_, err = table.At([]float64{1, 2})
	require.ErrorIs(t, err, ErrStateDimension)

	ev, err := table.Compile()
	require.NoError(t, err)
	_, err = ev.At(nil)
	require.ErrorIs(t, err, ErrStateDimension)
}

func TestAlphabetMismatch(t *testing.T) {
	sys := singleIntegrator(t)
	idx, err := word.New(3, 1)
	require.NoError(t, err)
	_, err = NewEngine(nil).Symbolic(sys, idx)
	require.ErrorIs(t, err, ErrAlphabetMismatch)
}

func TestNilArguments(t *testing.T) {
	sys := singleIntegrator(t)
	idx, _ := word.New(2, 1)
	_, err := NewEngine(nil).Symbolic(nil, idx)
	require.ErrorIs(t, err, ErrNilSystem)
	_, err = NewEngine(nil).Symbolic(sys, nil)
	require.ErrorIs(t, err, ErrNilIndex)
}

// failingDiff fails after a fixed number of gradients.
type failingDiff struct {
	remaining int
}

func (d *failingDiff) Gradient(f expr.Expr, vars []string) ([]expr.Expr, error) {
	if d.remaining == 0 {
		return nil, errors.New("not differentiable")
	}
	d.remaining--
	return expr.Gradient{}.Gradient(f, vars)
}

func TestDifferentiationErrorNamesDepthAndWord(t *testing.T) {
	sys := singleIntegrator(t)
	idx, err := word.New(2, 3)
	require.NoError(t, err)

	// Depth 1 consumes one gradient (the empty word), depth 2 two more.
	// Failing on the third gradient call means depth 2, word x1.
	_, err = NewEngine(&failingDiff{remaining: 2}).Symbolic(sys, idx)
	var derr *DifferentiationError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 2, derr.Depth)
	assert.True(t, derr.Word.Equal(word.Word{1}), "got word %s", derr.Word)
}

// shortDiff returns gradients of the wrong dimension.
type shortDiff struct{}

func (shortDiff) Gradient(expr.Expr, []string) ([]expr.Expr, error) {
	return []expr.Expr{}, nil
}

func TestGradientDimensionChecked(t *testing.T) {
	sys := singleIntegrator(t)
	idx, _ := word.New(2, 1)
	_, err := NewEngine(shortDiff{}).Symbolic(sys, idx)
	require.ErrorIs(t, err, ErrGradientDimension)
}
