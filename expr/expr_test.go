package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstFolding(t *testing.T) {
	assert.Equal(t, Const(5), Add(Const(2), Const(3)))
	assert.Equal(t, Const(6), Mul(Const(2), Const(3)))
	assert.Equal(t, Const(8), Pow(Const(2), 3))

	x := Var("x")
	assert.Equal(t, x, Add(Zero, x))
	assert.Equal(t, x, Add(x, Zero))
	assert.Equal(t, x, Mul(One, x))
	assert.Equal(t, Zero, Mul(x, Zero))
	assert.Equal(t, One, Pow(x, 0))
	assert.Equal(t, x, Pow(x, 1))
}

func TestDiffBasics(t *testing.T) {
	x, y := Var("x"), Var("y")
	env := map[string]float64{"x": 2, "y": 3}

	// d/dx (x*y + x^2) = y + 2x
	f := Add(Mul(x, y), Pow(x, 2))
	assert.InDelta(t, 3+4, f.Diff("x").Eval(env), 1e-12)
	assert.InDelta(t, 2, f.Diff("y").Eval(env), 1e-12)

	assert.Equal(t, Zero, Const(7).Diff("x"))
	assert.Equal(t, One, x.Diff("x"))
	assert.Equal(t, Zero, x.Diff("y"))
}

func TestDiffTranscendental(t *testing.T) {
	x := Var("x")
	env := map[string]float64{"x": 0.7}

	assert.InDelta(t, math.Cos(0.7), Sin(x).Diff("x").Eval(env), 1e-12)
	assert.InDelta(t, -math.Sin(0.7), Cos(x).Diff("x").Eval(env), 1e-12)
	assert.InDelta(t, math.Exp(0.7), Exp(x).Diff("x").Eval(env), 1e-12)

	// chain rule: d/dx sin(x^2) = 2x cos(x^2)
	f := Sin(Pow(x, 2)).Diff("x")
	assert.InDelta(t, 2*0.7*math.Cos(0.49), f.Eval(env), 1e-12)
}

func TestEvalUnboundIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Var("missing").Eval(map[string]float64{})))
}

func TestSumProd(t *testing.T) {
	x := Var("x")
	env := map[string]float64{"x": 2}
	assert.InDelta(t, 0, Sum().Eval(env), 1e-12)
	assert.InDelta(t, 1, Prod().Eval(env), 1e-12)
	assert.InDelta(t, 2+3+2, Sum(x, Const(3), x).Eval(env), 1e-12)
	assert.InDelta(t, 2*3*2, Prod(x, Const(3), x).Eval(env), 1e-12)
	assert.InDelta(t, 2./3., Div(x, Const(3)).Eval(env), 1e-9)
	assert.InDelta(t, -1, Sub(x, Const(3)).Eval(env), 1e-12)
}

func TestCompile(t *testing.T) {
	x, y := Var("x"), Var("y")
	f := Add(Mul(x, y), Sin(x))
	fn, err := Compile(f, []string{"x", "y"})
	require.NoError(t, err)
	assert.InDelta(t, 2*3+math.Sin(2), fn([]float64{2, 3}), 1e-12)
	assert.InDelta(t, 0, fn([]float64{0, 5}), 1e-12)
}

func TestCompileUnknownVariable(t *testing.T) {
	_, err := Compile(Var("z"), []string{"x", "y"})
	require.ErrorIs(t, err, ErrUnknownVariable)
}

func TestGradient(t *testing.T) {
	x, y := Var("x"), Var("y")
	f := Add(Mul(x, y), Pow(y, 2))
	grad, err := Gradient{}.Gradient(f, []string{"x", "y"})
	require.NoError(t, err)
	require.Len(t, grad, 2)
	env := map[string]float64{"x": 1, "y": 4}
	assert.InDelta(t, 4, grad[0].Eval(env), 1e-12)
	assert.InDelta(t, 1+8, grad[1].Eval(env), 1e-12)
}

func TestString(t *testing.T) {
	x := Var("x")
	assert.Equal(t, "sin(x)", Sin(x).String())
	assert.Equal(t, "x^2", Pow(x, 2).String())
	assert.Equal(t, "(x + 1)", Add(x, One).String())
}
