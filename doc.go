// Package fliess computes truncated Chen-Fliess series: an input-output
// expansion for nonlinear control-affine systems
//
//	x'(t) = g0(x) + u1(t) g1(x) + ... + um(t) gm(x),  y(t) = h(x)
//
// that approximates the output trajectory without integrating the
// differential equations. The pipeline enumerates all words over the
// alphabet {x0, ..., xm} up to a truncation depth (package word), computes
// the iterated integral of the input for every word (package iterint) and
// the Lie-derivative coefficient of the output for every word (package
// lie), and combines the two word-indexed tables by an inner product at
// every time sample (package series). Package ode supplies reference
// trajectories for validating the approximation; package config describes
// whole scenarios as YAML documents.
//
// The two recursions are structurally different but must index their
// tables identically; Approximate wires them to a single word.Index so
// they cannot disagree.
package fliess
