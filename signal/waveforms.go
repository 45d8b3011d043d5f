package signal

import "math"

// Step returns the constant signal u(t) = level.
func Step(level float64) Func {
	return func(float64) float64 { return level }
}

// Ramp returns u(t) = slope * t.
func Ramp(slope float64) Func {
	return func(t float64) float64 { return slope * t }
}

// Sine returns u(t) = amplitude * sin(2*pi*frequency*t).
func Sine(amplitude, frequency float64) Func {
	w := 2 * math.Pi * frequency
	return func(t float64) float64 { return amplitude * math.Sin(w*t) }
}
