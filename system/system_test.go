package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hammal/fliess/expr"
)

func TestNewControlAffineValidation(t *testing.T) {
	z1 := expr.Var("z1")

	_, err := NewControlAffine(nil, nil, nil, z1)
	require.ErrorIs(t, err, ErrNoState)

	_, err = NewControlAffine([]string{"z1", "z1"}, VectorField{expr.Zero, expr.Zero}, nil, z1)
	require.ErrorIs(t, err, ErrStateName)

	_, err = NewControlAffine([]string{"z1"}, VectorField{expr.Zero, expr.Zero}, nil, z1)
	require.ErrorIs(t, err, ErrFieldDimension)

	_, err = NewControlAffine([]string{"z1"}, VectorField{expr.Zero},
		[]VectorField{{expr.One, expr.One}}, z1)
	require.ErrorIs(t, err, ErrFieldDimension)

	_, err = NewControlAffine([]string{"z1"}, VectorField{expr.Zero}, nil, nil)
	require.ErrorIs(t, err, ErrNoOutput)

	// Expressions over unknown variables must fail at construction.
	_, err = NewControlAffine([]string{"z1"}, VectorField{expr.Var("q")}, nil, z1)
	require.ErrorIs(t, err, expr.ErrUnknownVariable)
}

func TestSingleIntegrator(t *testing.T) {
	sys, err := NewSingleIntegrator()
	require.NoError(t, err)
	assert.Equal(t, 1, sys.Dimension())
	assert.Equal(t, 1, sys.Inputs())
	assert.Equal(t, 3.5, sys.Output([]float64{3.5}))
}

func TestIntegratorChainDerivative(t *testing.T) {
	sys, err := NewIntegratorChain(3, 2)
	require.NoError(t, err)

	// z = [1, 10, 100], u = 5: z' = [5, 2*1, 2*10]
	d := sys.Dynamics(func(float64) []float64 { return []float64{5} })
	got := d.Derivative(0, mat.NewVecDense(3, []float64{1, 10, 100}))
	assert.InDelta(t, 5, got.AtVec(0), 1e-12)
	assert.InDelta(t, 2, got.AtVec(1), 1e-12)
	assert.InDelta(t, 20, got.AtVec(2), 1e-12)

	// Output is the last stage.
	assert.Equal(t, 100.0, sys.Output([]float64{1, 10, 100}))
}

func TestDynamicsNilInput(t *testing.T) {
	sys, err := NewIntegratorChain(2, 1)
	require.NoError(t, err)
	d := sys.Dynamics(nil)
	got := d.Derivative(0, mat.NewVecDense(2, []float64{3, 0}))
	assert.InDelta(t, 0, got.AtVec(0), 1e-12)
	assert.InDelta(t, 3, got.AtVec(1), 1e-12)
}

func TestBilinear(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{0, 1, -1, 0})
	Ab := mat.NewDense(2, 2, []float64{0, 0, 0, 1})
	b := mat.NewVecDense(2, []float64{1, 0})

	sys, err := NewBilinear(A, Ab, b)
	require.NoError(t, err)
	require.Equal(t, 2, sys.Dimension())

	// z = [2, 3], u = 4:
	// drift = A z = [3, -2]; control = 4*(b + Ab z) = 4*[1, 3] = [4, 12]
	d := sys.Dynamics(func(float64) []float64 { return []float64{4} })
	got := d.Derivative(0, mat.NewVecDense(2, []float64{2, 3}))
	assert.InDelta(t, 7, got.AtVec(0), 1e-12)
	assert.InDelta(t, 10, got.AtVec(1), 1e-12)

	assert.InDelta(t, 5, sys.Output([]float64{2, 3}), 1e-12)
}

func TestBilinearDimensionErrors(t *testing.T) {
	A := mat.NewDense(2, 2, nil)
	_, err := NewBilinear(A, mat.NewDense(1, 2, nil), mat.NewVecDense(2, nil))
	require.ErrorIs(t, err, ErrDimension)

	_, err = NewBilinear(A, mat.NewDense(2, 2, nil), mat.NewVecDense(3, nil))
	require.ErrorIs(t, err, ErrDimension)

	_, err = NewBilinear(mat.NewDense(2, 3, nil), mat.NewDense(2, 2, nil), mat.NewVecDense(2, nil))
	require.ErrorIs(t, err, ErrDimension)
}

func TestOutputTrajectory(t *testing.T) {
	sys, err := NewIntegratorChain(2, 1)
	require.NoError(t, err)
	traj := mat.NewDense(3, 2, []float64{0, 1, 0, 2, 0, 3})
	assert.Equal(t, []float64{1, 2, 3}, sys.OutputTrajectory(traj))
}
