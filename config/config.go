// Package config defines YAML scenario documents that name a system
// preset, an input waveform, and the series parameters, and resolves them
// into ready-to-run pipeline pieces.
package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/hammal/fliess/signal"
	"github.com/hammal/fliess/system"
	"github.com/hammal/fliess/word"
)

const (
	DefaultDepth = 2
	DefaultDt    = 1e-3
	DefaultTf    = 1.0
)

var (
	// ErrUnknownSystem indicates an unrecognized system preset name.
	ErrUnknownSystem = errors.New("config: unknown system")
	// ErrUnknownInput indicates an unrecognized input waveform name.
	ErrUnknownInput = errors.New("config: unknown input")
	// ErrInitState indicates an initial state of the wrong dimension.
	ErrInitState = errors.New("config: initial state dimension mismatch")
	// ErrUnknownPreset indicates an unrecognized preset name.
	ErrUnknownPreset = errors.New("config: unknown preset")
)

// Scenario describes one truncated-series computation.
type Scenario struct {
	System    string    `yaml:"system"`
	Input     string    `yaml:"input"`
	Depth     int       `yaml:"depth"`
	Dt        float64   `yaml:"dt"`
	Tf        float64   `yaml:"tf"`
	InitState []float64 `yaml:"init_state"`
	Amplitude float64   `yaml:"amplitude"`
	Frequency float64   `yaml:"frequency"`
	Gain      float64   `yaml:"gain"`
	Order     int       `yaml:"order"`
}

// Default returns the single-integrator unit-step scenario.
func Default() *Scenario {
	return &Scenario{
		System:    "integrator",
		Input:     "step",
		Depth:     DefaultDepth,
		Dt:        DefaultDt,
		Tf:        DefaultTf,
		InitState: []float64{0},
		Amplitude: 1,
		Frequency: 1,
		Gain:      1,
		Order:     2,
	}
}

// Load reads a scenario from a YAML file, on top of the defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes a scenario to a YAML file.
func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Preset returns a named ready-made scenario.
func Preset(name string) (*Scenario, error) {
	s, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	// Copy so callers can tweak without mutating the preset.
	out := *s
	out.InitState = append([]float64(nil), s.InitState...)
	return &out, nil
}

var presets = map[string]*Scenario{
	"integrator-step": Default(),
	"chain-sine": {
		System:    "chain",
		Input:     "sine",
		Depth:     4,
		Dt:        1e-3,
		Tf:        2,
		InitState: []float64{0, 0},
		Amplitude: 1,
		Frequency: 0.5,
		Gain:      1,
		Order:     2,
	},
	"bilinear-step": {
		System:    "bilinear",
		Input:     "step",
		Depth:     4,
		Dt:        1e-3,
		Tf:        1,
		InitState: []float64{0.1, 0},
		Amplitude: 0.5,
		Frequency: 1,
	},
}

// PresetNames lists the available presets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

// Build resolves the scenario into a model, a sampled input, and the
// word index shared by both engines.
func (s *Scenario) Build() (*system.ControlAffine, *signal.Input, *word.Index, error) {
	sys, err := s.buildSystem()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(s.InitState) != sys.Dimension() {
		return nil, nil, nil, fmt.Errorf("%w: got %d, system %q has dimension %d",
			ErrInitState, len(s.InitState), s.System, sys.Dimension())
	}

	fn, err := s.buildWaveform()
	if err != nil {
		return nil, nil, nil, err
	}
	fns := make([]signal.Func, sys.Inputs())
	for i := range fns {
		fns[i] = fn
	}
	in, err := signal.Sample(fns, s.Dt, s.Tf)
	if err != nil {
		return nil, nil, nil, err
	}

	idx, err := word.New(sys.Inputs()+1, s.Depth)
	if err != nil {
		return nil, nil, nil, err
	}
	return sys, in, idx, nil
}

func (s *Scenario) buildSystem() (*system.ControlAffine, error) {
	switch s.System {
	case "integrator":
		return system.NewSingleIntegrator()
	case "chain":
		return system.NewIntegratorChain(s.Order, s.Gain)
	case "bilinear":
		A := mat.NewDense(2, 2, []float64{0, 1, -1, -0.5})
		Ab := mat.NewDense(2, 2, []float64{0, 0, 0, 0.2})
		b := mat.NewVecDense(2, []float64{1, 0})
		return system.NewBilinear(A, Ab, b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, s.System)
	}
}

func (s *Scenario) buildWaveform() (signal.Func, error) {
	switch s.Input {
	case "step":
		return signal.Step(s.Amplitude), nil
	case "ramp":
		return signal.Ramp(s.Amplitude), nil
	case "sine":
		return signal.Sine(s.Amplitude, s.Frequency), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInput, s.Input)
	}
}
