package calculus

import (
	"errors"
	"fmt"
	"math"
)

// Side selects the direction from which a limit is approached.
type Side int8

const (
	// Both approaches from both sides and requires them to agree.
	Both Side = iota
	// Left approaches from below the point.
	Left
	// Right approaches from above the point.
	Right
)

func (s Side) String() string {
	switch s {
	case Both:
		return "both"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int8(s))
	}
}

// ParseSide parses "left", "right", or "both". The empty string is Both.
func ParseSide(s string) (Side, error) {
	switch s {
	case "", "both":
		return Both, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Both, fmt.Errorf("unknown limit side %q: %w", s, ErrInvalidOption)
	}
}

// Limit approximates the limit of f at point from the requested side. Each
// one-sided limit is extrapolated linearly to the point from samples one and
// two steps away, so it is not simply the value one step away: the left
// limit of x^2 at 3 is 8.9999999998 rather than f(3-h) = 8.99994. For Both,
// the two sides must agree within the tolerance, and the left value is the
// result; otherwise the error is a *LimitError. A side other than Both, Left,
// or Right is an error matching ErrInvalidOption.
func (f *Function) Limit(point float64, side Side) (float64, error) {
	h := f.cfg.stepOr(DefaultStep)
	switch side {
	case Left:
		return f.approach(point, -h)
	case Right:
		return f.approach(point, h)
	case Both:
		l, err := f.approach(point, -h)
		if err != nil {
			return 0, err
		}
		r, err := f.approach(point, h)
		if err != nil {
			return 0, err
		}
		if math.Abs(l-r) < f.cfg.tol {
			return l, nil
		}
		return 0, &LimitError{Point: point, Left: l, Right: r}
	default:
		return 0, fmt.Errorf("limit from %v: %w", side, ErrInvalidOption)
	}
}

// approach estimates a one-sided limit at point using samples at point+h and
// point+2h. The estimate is exact for functions linear near the point, so the
// two sides of a smooth function agree to O(h^2) rather than O(h).
func (f *Function) approach(point, h float64) (float64, error) {
	y1, err := f.At(point + h)
	if err != nil {
		return 0, err
	}
	y2, err := f.At(point + 2*h)
	if err != nil {
		return 0, err
	}
	return 2*y1 - y2, nil
}

// IsContinuousAt reports whether f is continuous at point: f must be defined
// there, the two-sided limit must exist, and the two must agree within the
// tolerance. A division by zero or a NaN at the point, or a limit that does
// not exist, makes the result false without error. Other errors mean the
// expression itself is invalid and are returned.
func (f *Function) IsContinuousAt(point float64) (bool, error) {
	v, err := f.At(point)
	if err != nil {
		if errors.Is(err, ErrDivisionByZero) {
			return false, nil
		}
		return false, err
	}
	if math.IsNaN(v) {
		return false, nil
	}
	l, err := f.Limit(point, Both)
	if err != nil {
		if errors.Is(err, ErrDivisionByZero) || errors.Is(err, ErrLimitDoesNotExist) {
			return false, nil
		}
		return false, err
	}
	return math.Abs(v-l) < f.cfg.tol, nil
}

// Limit compiles expr as a function of variable and approximates its limit at
// point.
func Limit(expr, variable string, point float64, side Side, opts ...Option) (float64, error) {
	f, err := Compile(expr, variable, opts...)
	if err != nil {
		return 0, err
	}
	return f.Limit(point, side)
}

// IsContinuousAt compiles expr as a function of variable and reports whether
// it is continuous at point.
func IsContinuousAt(expr, variable string, point float64, opts ...Option) (bool, error) {
	f, err := Compile(expr, variable, opts...)
	if err != nil {
		return false, err
	}
	return f.IsContinuousAt(point)
}
