// Package series combines the two word-indexed tables into the truncated
// Chen-Fliess approximation
//
//	F_c^N[u](t) = h(z0) + sum over 1 <= |eta| <= N of L_eta h(z0) * E_eta[u](t)
//
// and reports pointwise and aggregate error against an externally computed
// reference trajectory. The empty word carries h(z0) times the constant-1
// integral, so the assembly is one inner product over all words per sample.
package series

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hammal/fliess/iterint"
	"github.com/hammal/fliess/lie"
)

var (
	// ErrNilTable indicates a missing coefficient or integral table.
	ErrNilTable = errors.New("series: both tables are required")
	// ErrNilSeries indicates a nil or empty series passed to Compare.
	ErrNilSeries = errors.New("series: a non-empty series is required")
	// ErrTableMismatch indicates tables built under different word
	// orderings; pairing them positionally would be silently wrong.
	ErrTableMismatch = errors.New("series: tables were built with different word orderings")
	// ErrLengthMismatch indicates a reference trajectory on a different grid.
	ErrLengthMismatch = errors.New("series: reference length does not match")
)

// Series is a time-indexed approximate output trajectory.
type Series struct {
	Values []float64
	Dt     float64
}

// Duration returns the final grid time.
func (s *Series) Duration() float64 {
	return float64(len(s.Values)-1) * s.Dt
}

// Assemble zips the coefficient vector against the integral table, word
// by word, at every time sample. Both must derive from word indices with
// the same alphabet size and depth; anything else fails fast.
func Assemble(coeffs *lie.Coefficients, integrals *iterint.Table) (*Series, error) {
	if coeffs == nil || integrals == nil {
		return nil, ErrNilTable
	}
	if !coeffs.Index().Compatible(integrals.Index()) {
		return nil, fmt.Errorf("%w: coefficients (alphabet %d, depth %d), integrals (alphabet %d, depth %d)",
			ErrTableMismatch,
			coeffs.Index().AlphabetSize(), coeffs.Index().Depth(),
			integrals.Index().AlphabetSize(), integrals.Index().Depth())
	}
	if coeffs.Len() != integrals.Len() {
		return nil, fmt.Errorf("%w: %d coefficients, %d integrals",
			ErrTableMismatch, coeffs.Len(), integrals.Len())
	}

	values := make([]float64, integrals.Samples())
	for pos := 0; pos < coeffs.Len(); pos++ {
		c := coeffs.At(pos)
		if c == 0 {
			continue
		}
		floats.AddScaled(values, c, integrals.Row(pos))
	}
	return &Series{Values: values, Dt: integrals.Dt()}, nil
}

// Stats aggregates pointwise error between an approximation and a
// reference trajectory.
type Stats struct {
	// MaxAbs is the largest absolute pointwise error.
	MaxAbs float64
	// RMS is the root-mean-square pointwise error.
	RMS float64
	// Final is the absolute error at the last sample.
	Final float64
}

// Compare reports error statistics between the series and a reference
// trajectory sampled on the same grid.
func Compare(s *Series, reference []float64) (Stats, error) {
	if s == nil || len(s.Values) == 0 {
		return Stats{}, ErrNilSeries
	}
	if len(reference) != len(s.Values) {
		return Stats{}, fmt.Errorf("%w: series has %d samples, reference %d",
			ErrLengthMismatch, len(s.Values), len(reference))
	}
	diff := make([]float64, len(s.Values))
	floats.SubTo(diff, s.Values, reference)

	var stats Stats
	for _, d := range diff {
		stats.RMS += d * d
		if a := math.Abs(d); a > stats.MaxAbs {
			stats.MaxAbs = a
		}
	}
	stats.RMS = math.Sqrt(stats.RMS / float64(len(diff)))
	stats.Final = math.Abs(diff[len(diff)-1])
	return stats, nil
}
