package calculus

import (
	"fmt"
	"strconv"
	"strings"
)

// Function is an expression of one variable, compiled for repeated
// evaluation. A Function is immutable and safe for concurrent use, unless it
// was compiled with TextSubstitution and the expression is an assignment.
type Function struct {
	src      string
	variable string
	postfix  []Token
	cfg      config
}

// Compile parses an expression as a function of variable. Names other than
// variable are resolved from the symbol table given by WithSymbols, if any.
func Compile(expr, variable string, opts ...Option) (*Function, error) {
	if err := checkVariable(variable); err != nil {
		return nil, err
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	f := Function{src: expr, variable: variable, cfg: cfg}
	if cfg.text {
		// The text can only be checked once there is a value to substitute.
		return &f, nil
	}
	toks, err := Tokenize(expr, cfg.syms, variable)
	if err != nil {
		return nil, err
	}
	f.postfix, err = ToPostfix(toks)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func checkVariable(name string) error {
	if !isIdent(name) || reserved(name) {
		return fmt.Errorf("%q: %w", name, ErrInvalidVariable)
	}
	return nil
}

// At evaluates the function with its variable set to x.
func (f *Function) At(x float64) (float64, error) {
	if f.cfg.text {
		return Evaluate(strings.ReplaceAll(f.src, f.variable, decimal(x)), f.cfg.syms)
	}
	return evalPostfix(f.postfix, func(name string) (float64, bool) {
		return x, name == f.variable
	})
}

// Variable returns the name of the function's variable.
func (f *Function) Variable() string {
	return f.variable
}

// String returns the expression the function was compiled from.
func (f *Function) String() string {
	return f.src
}

// decimal formats x as a plain decimal number, without an exponent, so that
// the tokenizer reads it back as one number.
func decimal(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
