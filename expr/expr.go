// Package expr is a small scalar expression kernel: symbols, arithmetic,
// a few transcendental functions, exact differentiation, and compilation
// to positional evaluator closures. It exists to serve Lie-derivative
// construction; it is deliberately not a general computer-algebra system.
package expr

import (
	"fmt"
	"math"
)

// Expr is an immutable scalar expression over named variables.
type Expr interface {
	// Diff returns the exact partial derivative with respect to name.
	Diff(name string) Expr
	// Eval evaluates under an environment mapping every free variable
	// to a value; unbound variables evaluate to NaN.
	Eval(env map[string]float64) float64
	String() string
}

type constant struct{ v float64 }

type variable struct{ name string }

type add struct{ a, b Expr }

type mul struct{ a, b Expr }

type pow struct {
	base Expr
	exp  float64
}

type sin struct{ arg Expr }

type cos struct{ arg Expr }

type exp struct{ arg Expr }

// Const returns the constant expression v.
func Const(v float64) Expr { return constant{v} }

// Var returns the variable expression with the given name.
func Var(name string) Expr { return variable{name} }

// Zero and One are the usual fold targets.
var (
	Zero = Const(0)
	One  = Const(1)
)

func constValue(e Expr) (float64, bool) {
	c, ok := e.(constant)
	return c.v, ok
}

func isConst(e Expr, v float64) bool {
	c, ok := e.(constant)
	return ok && c.v == v
}

// Add returns a+b, folding constants and dropping additive zeros.
func Add(a, b Expr) Expr {
	av, aok := constValue(a)
	bv, bok := constValue(b)
	switch {
	case aok && bok:
		return constant{av + bv}
	case aok && av == 0:
		return b
	case bok && bv == 0:
		return a
	}
	return add{a, b}
}

// Sum folds a list of terms with Add. An empty sum is zero.
func Sum(terms ...Expr) Expr {
	acc := Zero
	for _, t := range terms {
		acc = Add(acc, t)
	}
	return acc
}

// Neg returns -a.
func Neg(a Expr) Expr { return Mul(Const(-1), a) }

// Sub returns a-b.
func Sub(a, b Expr) Expr { return Add(a, Neg(b)) }

// Mul returns a*b, folding constants and short-circuiting zeros and ones.
func Mul(a, b Expr) Expr {
	av, aok := constValue(a)
	bv, bok := constValue(b)
	switch {
	case aok && bok:
		return constant{av * bv}
	case aok && av == 0, bok && bv == 0:
		return Zero
	case aok && av == 1:
		return b
	case bok && bv == 1:
		return a
	}
	return mul{a, b}
}

// Prod folds a list of factors with Mul. An empty product is one.
func Prod(factors ...Expr) Expr {
	acc := One
	for _, f := range factors {
		acc = Mul(acc, f)
	}
	return acc
}

// Div returns a/b as a * b^-1.
func Div(a, b Expr) Expr { return Mul(a, Pow(b, -1)) }

// Pow returns base^exponent for a real constant exponent.
func Pow(base Expr, exponent float64) Expr {
	if exponent == 0 {
		return One
	}
	if exponent == 1 {
		return base
	}
	if v, ok := constValue(base); ok {
		return constant{math.Pow(v, exponent)}
	}
	return pow{base, exponent}
}

// Sin returns sin(a).
func Sin(a Expr) Expr {
	if v, ok := constValue(a); ok {
		return constant{math.Sin(v)}
	}
	return sin{a}
}

// Cos returns cos(a).
func Cos(a Expr) Expr {
	if v, ok := constValue(a); ok {
		return constant{math.Cos(v)}
	}
	return cos{a}
}

// Exp returns e^a.
func Exp(a Expr) Expr {
	if v, ok := constValue(a); ok {
		return constant{math.Exp(v)}
	}
	return exp{a}
}

func (c constant) Diff(string) Expr                { return Zero }
func (c constant) Eval(map[string]float64) float64 { return c.v }
func (c constant) String() string                  { return fmt.Sprintf("%g", c.v) }

func (x variable) Diff(name string) Expr {
	if x.name == name {
		return One
	}
	return Zero
}

func (x variable) Eval(env map[string]float64) float64 {
	v, ok := env[x.name]
	if !ok {
		return math.NaN()
	}
	return v
}

func (x variable) String() string { return x.name }

func (e add) Diff(name string) Expr { return Add(e.a.Diff(name), e.b.Diff(name)) }
func (e add) Eval(env map[string]float64) float64 {
	return e.a.Eval(env) + e.b.Eval(env)
}
func (e add) String() string { return fmt.Sprintf("(%s + %s)", e.a, e.b) }

func (e mul) Diff(name string) Expr {
	return Add(Mul(e.a.Diff(name), e.b), Mul(e.a, e.b.Diff(name)))
}
func (e mul) Eval(env map[string]float64) float64 {
	return e.a.Eval(env) * e.b.Eval(env)
}
func (e mul) String() string { return fmt.Sprintf("(%s * %s)", e.a, e.b) }

func (e pow) Diff(name string) Expr {
	// d/dz b^n = n b^(n-1) b'
	return Mul(Mul(Const(e.exp), Pow(e.base, e.exp-1)), e.base.Diff(name))
}
func (e pow) Eval(env map[string]float64) float64 {
	return math.Pow(e.base.Eval(env), e.exp)
}
func (e pow) String() string { return fmt.Sprintf("%s^%g", e.base, e.exp) }

func (e sin) Diff(name string) Expr { return Mul(Cos(e.arg), e.arg.Diff(name)) }
func (e sin) Eval(env map[string]float64) float64 {
	return math.Sin(e.arg.Eval(env))
}
func (e sin) String() string { return fmt.Sprintf("sin(%s)", e.arg) }

func (e cos) Diff(name string) Expr { return Mul(Neg(Sin(e.arg)), e.arg.Diff(name)) }
func (e cos) Eval(env map[string]float64) float64 {
	return math.Cos(e.arg.Eval(env))
}
func (e cos) String() string { return fmt.Sprintf("cos(%s)", e.arg) }

func (e exp) Diff(name string) Expr { return Mul(Exp(e.arg), e.arg.Diff(name)) }
func (e exp) Eval(env map[string]float64) float64 {
	return math.Exp(e.arg.Eval(env))
}
func (e exp) String() string { return fmt.Sprintf("exp(%s)", e.arg) }
