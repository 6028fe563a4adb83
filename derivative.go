package calculus

// Derivative differentiates expr symbolically with respect to variable, order
// times, and returns the result as expression text. The result can be passed
// back to Evaluate, Compile, or Derivative. Names other than variable are
// replaced with their values from the symbol table given by WithSymbols; the
// constants pi and e are kept by name. Order 0 returns expr reformatted.
func Derivative(expr, variable string, order uint, opts ...Option) (string, error) {
	if err := checkVariable(variable); err != nil {
		return "", err
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return "", err
	}
	toks, err := Tokenize(expr, cfg.syms, variable)
	if err != nil {
		return "", err
	}
	postfix, err := ToPostfix(toks)
	if err != nil {
		return "", err
	}
	n, err := tree(postfix)
	if err != nil {
		return "", err
	}
	for i := uint(0); i < order; i++ {
		n = n.diff(variable)
	}
	return n.String(), nil
}

// diff returns the derivative of n with respect to v.
func (n *node) diff(v string) *node {
	switch n.kind {
	case nodeNum:
		return lit(0)
	case nodeVar:
		if n.name == v {
			return lit(1)
		}
		return lit(0)
	case nodeAdd:
		return add(n.left.diff(v), n.right.diff(v))
	case nodeSub:
		return sub(n.left.diff(v), n.right.diff(v))
	case nodeMul:
		// (uw)' = u'w + uw'
		u, w := n.left, n.right
		return add(mul(u.diff(v), w), mul(u, w.diff(v)))
	case nodeDiv:
		// (u/w)' = (u'w - uw')/w^2
		u, w := n.left, n.right
		return div(sub(mul(u.diff(v), w), mul(u, w.diff(v))), pow(w, lit(2)))
	case nodePow:
		u, w := n.left, n.right
		switch {
		case !w.has(v):
			// (u^c)' = c*u^(c-1)*u'
			return mul(mul(w, pow(u, sub(w, lit(1)))), u.diff(v))
		case !u.has(v):
			// (a^w)' = a^w*log(a)*w'
			return mul(mul(n, call("log", u)), w.diff(v))
		default:
			// (u^w)' = u^w*(w'*log(u) + w*u'/u)
			return mul(n, add(mul(w.diff(v), call("log", u)), div(mul(w, u.diff(v)), u)))
		}
	case nodeCall:
		u := n.left
		du := u.diff(v)
		switch n.name {
		case "sin":
			return mul(call("cos", u), du)
		case "cos":
			return mul(sub(lit(0), call("sin", u)), du)
		case "tan":
			return div(du, pow(call("cos", u), lit(2)))
		case "sqrt":
			return div(du, mul(lit(2), call("sqrt", u)))
		case "log":
			return div(du, u)
		case "exp":
			return mul(call("exp", u), du)
		default:
			panic("calculus: no derivative for function " + n.name)
		}
	default:
		panic("calculus: invalid node kind in derivative")
	}
}
