// Package iterint computes the iterated integrals E_eta[u](t) of a sampled
// input for every word eta up to the truncation depth, via Chen's identity:
// the integral for x_i·eta is the cumulative integral of u_i(t) times the
// integral for eta. Each depth is produced from the previous depth in one
// batched pass over a dense layer matrix, so shared sub-integrals are
// computed once per depth rather than once per word.
package iterint

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hammal/fliess/signal"
	"github.com/hammal/fliess/word"
)

// Rule selects the cumulative quadrature applied at every depth. The rule
// is fixed per computation: depth k+1 integrates a product that already
// carries depth-k quadrature error, so mixing rules across depths would
// compound inconsistently.
type Rule int

const (
	// RuleTrapezoid is the cumulative trapezoidal rule, second order in dt.
	RuleTrapezoid Rule = iota
	// RuleRectangle is the cumulative left-endpoint rule, first order in dt.
	RuleRectangle
)

// Engine computes iterated-integral tables. The zero value uses the
// trapezoidal rule.
type Engine struct {
	Rule Rule
}

// Compute builds the full table for every word enumerated by idx. The
// input must carry exactly idx.AlphabetSize()-1 channels; the constant-1
// drift channel is synthesized here. The returned table is immutable and
// ordered exactly as idx orders words.
func (e Engine) Compute(idx *word.Index, in *signal.Input) (*Table, error) {
	if idx == nil {
		return nil, ErrNilIndex
	}
	if in == nil {
		return nil, ErrNilInput
	}
	if in.Channels()+1 != idx.AlphabetSize() {
		return nil, fmt.Errorf("%w: %d channels for alphabet size %d",
			ErrChannelCount, in.Channels(), idx.AlphabetSize())
	}
	integrate, err := e.integrator()
	if err != nil {
		return nil, err
	}

	a := idx.AlphabetSize()
	T := in.Samples()
	dt := in.Dt()

	// Channel 0 is the drift's constant 1; channels 1..m the samples.
	channels := make([][]float64, a)
	ones := make([]float64, T)
	for t := range ones {
		ones[t] = 1
	}
	channels[0] = ones
	for i := 1; i < a; i++ {
		channels[i] = in.Channel(i - 1)
	}

	layers := make([]*mat.Dense, idx.Depth()+1)
	layers[0] = mat.NewDense(1, T, append([]float64(nil), ones...))

	for k := 0; k < idx.Depth(); k++ {
		prev := layers[k]
		wk, _ := prev.Dims()
		next := mat.NewDense(a*wk, T, nil)

		// Chen's identity, batched: every channel against every
		// depth-k row. Blocks write disjoint rows, so they run
		// concurrently.
		var wg sync.WaitGroup
		wg.Add(a)
		for i := 0; i < a; i++ {
			go func(i int) {
				defer wg.Done()
				product := make([]float64, T)
				for j := 0; j < wk; j++ {
					floats.MulTo(product, channels[i], prev.RawRowView(j))
					integrate(next.RawRowView(i*wk+j), product, dt)
				}
			}(i)
		}
		wg.Wait()
		layers[k+1] = next
	}

	return &Table{idx: idx, samples: T, dt: dt, layers: layers}, nil
}

type integrateFunc func(dst, src []float64, dt float64)

func (e Engine) integrator() (integrateFunc, error) {
	switch e.Rule {
	case RuleTrapezoid:
		return cumTrapezoid, nil
	case RuleRectangle:
		return cumRectangle, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrRule, e.Rule)
	}
}

// cumTrapezoid writes the cumulative trapezoidal integral of src into dst.
func cumTrapezoid(dst, src []float64, dt float64) {
	dst[0] = 0
	for t := 1; t < len(src); t++ {
		dst[t] = dst[t-1] + 0.5*dt*(src[t-1]+src[t])
	}
}

// cumRectangle writes the cumulative left-endpoint integral of src into dst.
func cumRectangle(dst, src []float64, dt float64) {
	dst[0] = 0
	for t := 1; t < len(src); t++ {
		dst[t] = dst[t-1] + dt*src[t-1]
	}
}
