package calculus

// Integrate approximates the definite integral of f from a to b with the
// composite trapezoidal rule over a fixed number of equal subintervals,
// DefaultSlices unless set with the Slices option. b may be less than a.
func (f *Function) Integrate(a, b float64) (float64, error) {
	n := f.cfg.slices
	h := (b - a) / float64(n)
	fa, err := f.At(a)
	if err != nil {
		return 0, err
	}
	fb, err := f.At(b)
	if err != nil {
		return 0, err
	}
	sum := 0.5 * (fa + fb)
	for i := 1; i < n; i++ {
		y, err := f.At(a + float64(i)*h)
		if err != nil {
			return 0, err
		}
		sum += y
	}
	return sum * h, nil
}

// Slope approximates the order-th derivative of f at x with a central finite
// difference. The step is DefaultSlopeStep unless set with the Step option.
// Order 0 is f(x).
func (f *Function) Slope(x float64, order uint) (float64, error) {
	h := f.cfg.stepOr(DefaultSlopeStep)
	// The n-th central difference samples x + (n/2 - k)h for k in [0, n] with
	// alternating binomial weights.
	var sum float64
	c := 1.0
	for k := uint(0); k <= order; k++ {
		y, err := f.At(x + (float64(order)/2-float64(k))*h)
		if err != nil {
			return 0, err
		}
		if k%2 == 0 {
			sum += c * y
		} else {
			sum -= c * y
		}
		c = c * float64(order-k) / float64(k+1)
	}
	for k := uint(0); k < order; k++ {
		sum /= h
	}
	return sum, nil
}

// Integrate compiles expr as a function of variable and integrates it from a
// to b.
func Integrate(expr, variable string, a, b float64, opts ...Option) (float64, error) {
	f, err := Compile(expr, variable, opts...)
	if err != nil {
		return 0, err
	}
	return f.Integrate(a, b)
}

// Slope compiles expr as a function of variable and approximates its
// order-th derivative at x.
func Slope(expr, variable string, x float64, order uint, opts ...Option) (float64, error) {
	f, err := Compile(expr, variable, opts...)
	if err != nil {
		return 0, err
	}
	return f.Slope(x, order)
}
