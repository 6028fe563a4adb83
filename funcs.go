package calculus

import (
	"math"
	"slices"
)

// funcs is the registry of unary functions. Arguments outside a function's
// domain produce NaN rather than an error.
var funcs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"sqrt": math.Sqrt,
	"log":  math.Log,
	"exp":  math.Exp,
}

// constants are resolved while tokenizing, before any variable lookup, so they
// shadow variables of the same name.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Funcs returns the names of the recognized functions in sorted order.
func Funcs() []string {
	return sortedKeys(funcs)
}

// Constants returns the names of the recognized constants in sorted order.
func Constants() []string {
	return sortedKeys(constants)
}

func sortedKeys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}

// reserved returns whether name is a function or constant and so cannot be
// used as a variable.
func reserved(name string) bool {
	if _, ok := funcs[name]; ok {
		return true
	}
	_, ok := constants[name]
	return ok
}

// operator describes a binary operator.
type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// apply computes a op b.
	apply func(a, b float64) (float64, error)
}

// binop gets the binary operator for a token string. If there is no such
// operator, then the result has a nil apply.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, func(a, b float64) (float64, error) { return a + b, nil }}
	case "-":
		return operator{1, func(a, b float64) (float64, error) { return a - b, nil }}
	case "*":
		return operator{2, func(a, b float64) (float64, error) { return a * b, nil }}
	case "/":
		return operator{2, quo}
	case "^":
		return operator{3, func(a, b float64) (float64, error) { return math.Pow(a, b), nil }}
	default:
		return operator{}
	}
}

func quo(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}
