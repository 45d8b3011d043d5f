package fliess

import (
	"github.com/hammal/fliess/iterint"
	"github.com/hammal/fliess/lie"
	"github.com/hammal/fliess/series"
	"github.com/hammal/fliess/signal"
	"github.com/hammal/fliess/system"
	"github.com/hammal/fliess/word"
)

// Approximate runs the whole pipeline: enumerate words up to depth,
// compute both word-indexed tables from one shared index, and assemble
// the truncated series at the initial state z0.
func Approximate(sys *system.ControlAffine, in *signal.Input, depth int, z0 []float64) (*series.Series, error) {
	if sys == nil {
		return nil, lie.ErrNilSystem
	}
	idx, err := word.New(sys.Inputs()+1, depth)
	if err != nil {
		return nil, err
	}

	integrals, err := iterint.Engine{}.Compute(idx, in)
	if err != nil {
		return nil, err
	}
	coeffs, err := lie.NewEngine(nil).Coefficients(sys, idx, z0)
	if err != nil {
		return nil, err
	}
	return series.Assemble(coeffs, integrals)
}
