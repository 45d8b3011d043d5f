// Package ode is an ordinary differential equation library implementing the
// Runge-Kutta methods https://en.wikipedia.org/wiki/Runge–Kutta_methods.
// It produces the reference trajectories the truncated series is validated
// against; the series recursion itself never calls into this package.
package ode

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTimeStep indicates a non-positive integration step.
	ErrTimeStep = errors.New("ode: time step must be positive")
	// ErrSteps indicates a negative step count.
	ErrSteps = errors.New("ode: step count must be non-negative")
	// ErrTolerance indicates a non-positive adaptive error tolerance.
	ErrTolerance = errors.New("ode: tolerance must be positive")
	// ErrNoConvergence indicates the adaptive stepper hit its iteration cap.
	ErrNoConvergence = errors.New("ode: adaptive stepping did not converge")
)

// DifferentiableSystem is anything with a state derivative.
type DifferentiableSystem interface {
	Derivative(t float64, state mat.Vector) mat.Vector
}

// butcherTableau describes one Runge-Kutta scheme, see
// https://en.wikipedia.org/wiki/Runge–Kutta_methods. Two weight rows make
// the scheme embedded, enabling an error estimate per step.
type butcherTableau struct {
	stages  int
	weights [][]float64
	nodes   []float64
	matrix  [][]float64
}

// RungeKutta advances states of a DifferentiableSystem according to its
// Butcher tableau.
type RungeKutta struct {
	tableau butcherTableau
}

// NewRK4 returns the classic fourth order Runge-Kutta scheme.
func NewRK4() *RungeKutta {
	return &RungeKutta{butcherTableau{
		stages:  4,
		nodes:   []float64{0, 1. / 2., 1. / 2., 1},
		weights: [][]float64{{1. / 6., 1. / 3., 1. / 3., 1. / 6.}},
		matrix: [][]float64{
			nil,
			{1. / 2.},
			{0, 1. / 2.},
			{0, 0, 1.},
		},
	}}
}

// NewEulerMethod returns the forward Euler scheme.
func NewEulerMethod() *RungeKutta {
	return &RungeKutta{butcherTableau{
		stages:  1,
		nodes:   []float64{0},
		weights: [][]float64{{1}},
		matrix:  [][]float64{nil},
	}}
}

// NewFehlberg45 returns the embedded Runge-Kutta-Fehlberg 4(5) scheme,
// https://en.wikipedia.org/wiki/Runge%E2%80%93Kutta%E2%80%93Fehlberg_method.
func NewFehlberg45() *RungeKutta {
	return &RungeKutta{butcherTableau{
		stages: 6,
		nodes:  []float64{0, 1. / 4., 3. / 8., 12. / 13., 1., 1. / 2.},
		weights: [][]float64{
			{16. / 135., 0, 6656. / 12825., 28561. / 56430., -9. / 50., 2. / 55.},
			{25. / 216., 0, 1408. / 2565., 2197. / 4104., -1. / 5., 0},
		},
		matrix: [][]float64{
			nil,
			{1. / 4.},
			{3. / 32., 9. / 32.},
			{1932. / 2197., -7200. / 2197., 7296. / 2197.},
			{439. / 216., -8., 3680. / 513., -845. / 4104.},
			{-8. / 27., 2, -3544. / 2565., 1859. / 4104., -11. / 40.},
		},
	}}
}

// Stages returns the number of derivative evaluations per step.
func (rk *RungeKutta) Stages() int { return rk.tableau.stages }

// Step advances state in place from time from to time to and returns an
// error-estimate vector when the tableau is embedded, nil otherwise.
func (rk *RungeKutta) Step(from, to float64, state *mat.VecDense, sys DifferentiableSystem) *mat.VecDense {
	n := state.Len()
	h := to - from
	K := make([]*mat.VecDense, rk.tableau.stages)

	var tmp mat.VecDense
	for i := range K {
		tmp.CloneFromVec(state)
		for j, a := range rk.tableau.matrix[i] {
			tmp.AddScaledVec(&tmp, h*a, K[j])
		}
		K[i] = mat.NewVecDense(n, nil)
		K[i].CopyVec(sys.Derivative(from+h*rk.tableau.nodes[i], &tmp))
	}

	var estimate *mat.VecDense
	if len(rk.tableau.weights) == 2 {
		estimate = mat.NewVecDense(n, nil)
	}
	for i, k := range K {
		state.AddScaledVec(state, h*rk.tableau.weights[0][i], k)
		if estimate != nil {
			estimate.AddScaledVec(estimate, h*(rk.tableau.weights[1][i]-rk.tableau.weights[0][i]), k)
		}
	}
	return estimate
}

// Solve integrates the system over a fixed grid of the given step, starting
// from z0 at t = 0, and returns a (steps+1) x n trajectory whose first row
// is the initial state.
func (rk *RungeKutta) Solve(sys DifferentiableSystem, z0 mat.Vector, dt float64, steps int) (*mat.Dense, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrTimeStep, dt)
	}
	if steps < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrSteps, steps)
	}
	n := z0.Len()
	traj := mat.NewDense(steps+1, n, nil)

	state := mat.NewVecDense(n, nil)
	state.CopyVec(z0)
	traj.SetRow(0, state.RawVector().Data)

	for k := 0; k < steps; k++ {
		rk.Step(float64(k)*dt, float64(k+1)*dt, state, sys)
		traj.SetRow(k+1, state.RawVector().Data)
	}
	return traj, nil
}

// AdaptiveSolve advances state in place from time from to time to, halving
// the step until the embedded error estimate drops below tol. Schemes
// without an embedded estimate accept every step.
func (rk *RungeKutta) AdaptiveSolve(from, to, tol float64, state *mat.VecDense, sys DifferentiableSystem) error {
	if tol <= 0 {
		return fmt.Errorf("%w: got %g", ErrTolerance, tol)
	}
	const maxIterations = 10000

	tmp := mat.NewVecDense(state.Len(), nil)
	tnow := from
	count := 0
	for tnow < to {
		tnext := to
		for {
			tmp.CopyVec(state)
			estimate := rk.Step(tnow, tnext, tmp, sys)

			current := 0.
			if estimate != nil {
				for i := 0; i < estimate.Len(); i++ {
					current += math.Abs(estimate.AtVec(i))
				}
			}
			if current < tol {
				break
			}
			// Halve the interval and try again.
			tnext = tnow + (tnext-tnow)/2.

			count++
			if count >= maxIterations {
				return fmt.Errorf("%w after %d iterations at t=%g", ErrNoConvergence, count, tnow)
			}
		}
		state.CopyVec(tmp)
		tnow = tnext
	}
	return nil
}
