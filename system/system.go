// Package system describes control-affine models
//
//	x'(t) = g0(x) + u1(t) g1(x) + ... + um(t) gm(x)
//	y(t)  = h(x)
//
// over symbolic state variables. The vector fields and output are
// expressions so the Lie-derivative recursion can differentiate them
// exactly; every field is also compiled once at construction so numeric
// evaluation costs no symbolic work.
package system

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hammal/fliess/expr"
	"github.com/hammal/fliess/ode"
)

// VectorField maps the state to a velocity contribution, one expression
// component per state coordinate.
type VectorField []expr.Expr

// ControlAffine is an immutable control-affine model. The field order
// g0, g1, ..., gm matches the alphabet order x0, x1, ..., xm.
type ControlAffine struct {
	states     []string
	drift      VectorField
	controlled []VectorField
	output     expr.Expr

	outputFn expr.EvalFunc
	fieldFns [][]expr.EvalFunc // (m+1) x n, drift first
}

// NewControlAffine validates dimensions, compiles every component against
// the state variable order, and returns the model. Expressions that
// reference a variable outside states fail here, not at evaluation time.
func NewControlAffine(states []string, drift VectorField, controlled []VectorField, output expr.Expr) (*ControlAffine, error) {
	n := len(states)
	if n < 1 {
		return nil, ErrNoState
	}
	seen := make(map[string]bool, n)
	for _, name := range states {
		if name == "" || seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrStateName, name)
		}
		seen[name] = true
	}
	if len(drift) != n {
		return nil, fmt.Errorf("%w: drift has %d components, state dimension is %d", ErrFieldDimension, len(drift), n)
	}
	for i, g := range controlled {
		if len(g) != n {
			return nil, fmt.Errorf("%w: field g%d has %d components, state dimension is %d", ErrFieldDimension, i+1, len(g), n)
		}
	}
	if output == nil {
		return nil, ErrNoOutput
	}

	m := &ControlAffine{
		states:     states,
		drift:      drift,
		controlled: controlled,
		output:     output,
	}

	var err error
	if m.outputFn, err = expr.Compile(output, states); err != nil {
		return nil, fmt.Errorf("system: compiling output: %w", err)
	}
	fields := m.Fields()
	m.fieldFns = make([][]expr.EvalFunc, len(fields))
	for i, g := range fields {
		m.fieldFns[i] = make([]expr.EvalFunc, n)
		for c, component := range g {
			if m.fieldFns[i][c], err = expr.Compile(component, states); err != nil {
				return nil, fmt.Errorf("system: compiling field g%d component %d: %w", i, c, err)
			}
		}
	}
	return m, nil
}

// Dimension returns the state dimension n.
func (m *ControlAffine) Dimension() int { return len(m.states) }

// Inputs returns the number of controlled channels.
func (m *ControlAffine) Inputs() int { return len(m.controlled) }

// States returns the state variable names. Read-only by contract.
func (m *ControlAffine) States() []string { return m.states }

// Drift returns g0.
func (m *ControlAffine) Drift() VectorField { return m.drift }

// Controlled returns g_{i+1} for i in 0..m-1.
func (m *ControlAffine) Controlled(i int) VectorField { return m.controlled[i] }

// Fields returns all vector fields in alphabet order, drift first.
func (m *ControlAffine) Fields() []VectorField {
	fields := make([]VectorField, 0, 1+len(m.controlled))
	fields = append(fields, m.drift)
	fields = append(fields, m.controlled...)
	return fields
}

// OutputExpr returns the symbolic output h.
func (m *ControlAffine) OutputExpr() expr.Expr { return m.output }

// Output evaluates h at a state of length Dimension.
func (m *ControlAffine) Output(z []float64) float64 { return m.outputFn(z) }

// OutputTrajectory applies h to every row of a T x n state trajectory,
// such as one produced by ode.RungeKutta.Solve.
func (m *ControlAffine) OutputTrajectory(traj *mat.Dense) []float64 {
	rows, _ := traj.Dims()
	out := make([]float64, rows)
	for k := 0; k < rows; k++ {
		out[k] = m.outputFn(traj.RawRowView(k))
	}
	return out
}

// dynamics binds a model to an input so it satisfies ode.DifferentiableSystem.
type dynamics struct {
	model *ControlAffine
	u     func(t float64) []float64
}

// Dynamics returns the bound system x' = g0(x) + sum u_i(t) g_i(x).
// A nil input means all controlled channels are zero.
func (m *ControlAffine) Dynamics(u func(t float64) []float64) ode.DifferentiableSystem {
	return dynamics{model: m, u: u}
}

func (d dynamics) Derivative(t float64, state mat.Vector) mat.Vector {
	n := d.model.Dimension()
	z := make([]float64, n)
	for i := range z {
		z[i] = state.AtVec(i)
	}

	out := mat.NewVecDense(n, nil)
	for c := 0; c < n; c++ {
		out.SetVec(c, d.model.fieldFns[0][c](z))
	}
	if d.u == nil {
		return out
	}
	uv := d.u(t)
	for i := range d.model.controlled {
		for c := 0; c < n; c++ {
			out.SetVec(c, out.AtVec(c)+uv[i]*d.model.fieldFns[i+1][c](z))
		}
	}
	return out
}
