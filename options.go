package calculus

import (
	"fmt"
	"math"
)

// Defaults for the calculus operations.
const (
	// DefaultSlices is the number of subintervals used by Integrate.
	DefaultSlices = 1000
	// DefaultStep is the offset from the point used by Limit.
	DefaultStep = 1e-5
	// DefaultTolerance is the largest difference between two values that
	// Limit and IsContinuousAt consider equal.
	DefaultTolerance = 1e-5
	// DefaultSlopeStep is the finite difference step used by Slope.
	DefaultSlopeStep = 1e-3
)

// Option is an option for compiling a Function.
type Option interface {
	calcOption()
}

type (
	symsopt   struct{ syms *Symbols }
	slicesopt int
	stepopt   float64
	tolopt    float64
	textopt   struct{}
)

func (symsopt) calcOption()   {}
func (slicesopt) calcOption() {}
func (stepopt) calcOption()   {}
func (tolopt) calcOption()    {}
func (textopt) calcOption()   {}

// WithSymbols resolves names other than the function's variable from syms.
// Values are read when the expression is compiled, except with
// TextSubstitution, where they are read on every evaluation.
func WithSymbols(syms *Symbols) Option {
	return symsopt{syms}
}

// Slices sets the number of subintervals for integration. n must be positive.
func Slices(n int) Option {
	return slicesopt(n)
}

// Step sets the finite difference step for limits, continuity, and slopes. h
// must be positive and finite.
func Step(h float64) Option {
	return stepopt(h)
}

// Tolerance sets the largest difference between values that limits and
// continuity treat as equal. tol must be positive.
func Tolerance(tol float64) Option {
	return tolopt(tol)
}

// TextSubstitution evaluates a function by replacing every occurrence of the
// variable's name in the expression text with the decimal value of the
// argument and evaluating the result from scratch.
//
// This reproduces the behavior of earlier versions of the calculator. The
// replacement is blind to identifier boundaries, so other names containing
// the variable's name are corrupted, and negative arguments cannot be
// evaluated because the substituted text has a leading minus.
func TextSubstitution() Option {
	return textopt{}
}

type config struct {
	syms   *Symbols
	slices int
	step   float64
	tol    float64
	text   bool
}

// newConfig applies options over the defaults. step is left 0 when unset so
// that each operation can choose its own default.
func newConfig(opts []Option) (config, error) {
	c := config{slices: DefaultSlices, tol: DefaultTolerance}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case symsopt:
			c.syms = opt.syms
		case slicesopt:
			if opt < 1 {
				return c, fmt.Errorf("slice count %d must be positive: %w", int(opt), ErrInvalidOption)
			}
			c.slices = int(opt)
		case stepopt:
			h := float64(opt)
			if !(h > 0) || math.IsInf(h, 0) {
				return c, fmt.Errorf("step %g must be positive and finite: %w", h, ErrInvalidOption)
			}
			c.step = h
		case tolopt:
			if !(opt > 0) {
				return c, fmt.Errorf("tolerance %g must be positive: %w", float64(opt), ErrInvalidOption)
			}
			c.tol = float64(opt)
		case textopt:
			c.text = true
		default:
			panic("calculus: unknown option type")
		}
	}
	return c, nil
}

// stepOr returns the configured step, or def if none was set.
func (c *config) stepOr(def float64) float64 {
	if c.step == 0 {
		return def
	}
	return c.step
}
