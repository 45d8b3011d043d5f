// Package signal represents multichannel input signals sampled on a
// uniform time grid. The iterated-integral recursion consumes the
// controlled channels u1..um only; the constant drift channel is
// synthesized by the engine, never stored here.
package signal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Func is a scalar signal in function form, u(t).
type Func func(t float64) float64

// Input holds m controlled channels sampled at T points with uniform
// step dt, one matrix row per channel. Immutable once constructed.
type Input struct {
	data *mat.Dense
	dt   float64
}

// NewInput wraps an m x T sample matrix with its time step. The matrix is
// retained, not copied; callers must not mutate it afterwards.
func NewInput(data *mat.Dense, dt float64) (*Input, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrTimeStep, dt)
	}
	m, T := data.Dims()
	if m < 1 {
		return nil, ErrNoChannels
	}
	if T < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSamples, T)
	}
	return &Input{data: data, dt: dt}, nil
}

// Sample evaluates function-form signals on the grid t = 0, dt, ..., tf,
// endpoint included, and returns the resulting Input.
func Sample(fns []Func, dt, tf float64) (*Input, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrTimeStep, dt)
	}
	if tf <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrSpan, tf)
	}
	if len(fns) == 0 {
		return nil, ErrNoChannels
	}
	T := int(math.Round(tf/dt)) + 1
	if T < 2 {
		return nil, fmt.Errorf("%w: dt %g over span %g", ErrTooFewSamples, dt, tf)
	}
	data := mat.NewDense(len(fns), T, nil)
	for i, u := range fns {
		row := data.RawRowView(i)
		for k := range row {
			row[k] = u(float64(k) * dt)
		}
	}
	return &Input{data: data, dt: dt}, nil
}

// Channels returns the number of controlled channels m.
func (in *Input) Channels() int {
	m, _ := in.data.Dims()
	return m
}

// Samples returns the number of grid points T.
func (in *Input) Samples() int {
	_, T := in.data.Dims()
	return T
}

// Dt returns the sampling step.
func (in *Input) Dt() float64 { return in.dt }

// Duration returns the final grid time (T-1)*dt.
func (in *Input) Duration() float64 {
	return float64(in.Samples()-1) * in.dt
}

// At returns sample k of channel i.
func (in *Input) At(channel, sample int) float64 {
	return in.data.At(channel, sample)
}

// Channel returns channel i's samples as a shared, read-only slice.
func (in *Input) Channel(i int) []float64 {
	return in.data.RawRowView(i)
}

// Data returns the underlying sample matrix. Read-only by contract.
func (in *Input) Data() *mat.Dense { return in.data }
