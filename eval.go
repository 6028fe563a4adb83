package calculus

import "strings"

// EvaluatePostfix reduces a postfix token sequence to a single value. The
// sequence must not contain free variables; use Compile to evaluate
// expressions with them.
func EvaluatePostfix(postfix []Token) (float64, error) {
	return evalPostfix(postfix, nil)
}

// binding supplies the values of free variables. A nil binding binds nothing.
type binding func(name string) (float64, bool)

// evalPostfix evaluates postfix with an operand stack local to the call, so
// nested evaluations never share state.
func evalPostfix(postfix []Token, bind binding) (float64, error) {
	stack := make([]float64, 0, len(postfix)/2+1)
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNum:
			stack = append(stack, tok.Num)
		case TokenVar:
			var v float64
			ok := false
			if bind != nil {
				v, ok = bind(tok.Text)
			}
			if !ok {
				return 0, &NameError{Col: tok.Pos, Name: tok.Text}
			}
			stack = append(stack, v)
		case TokenOp:
			if len(stack) < 2 {
				return 0, &StackError{Col: tok.Pos, Op: tok.Text, Have: len(stack)}
			}
			// The right operand is on top.
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			a := stack[len(stack)-1]
			op := binop(tok.Text)
			if op.apply == nil {
				return 0, &TokenError{Col: tok.Pos, Tok: tok}
			}
			r, err := op.apply(a, b)
			if err != nil {
				return 0, &ArithError{Col: tok.Pos, Op: tok.Text, Err: err}
			}
			stack[len(stack)-1] = r
		case TokenFunc:
			if len(stack) < 1 {
				return 0, &StackError{Col: tok.Pos, Op: tok.Text, Have: 0}
			}
			f, ok := funcs[tok.Text]
			if !ok {
				return 0, &TokenError{Col: tok.Pos, Tok: tok}
			}
			stack[len(stack)-1] = f(stack[len(stack)-1])
		default:
			// Parentheses never survive ToPostfix.
			return 0, &TokenError{Col: tok.Pos, Tok: tok}
		}
	}
	if len(stack) != 1 {
		return 0, &StackError{Have: len(stack)}
	}
	return stack[0], nil
}

// Evaluate evaluates an expression using the variables in syms, which may be
// nil if the expression uses no variables.
//
// If the expression contains an '=', it must be an assignment "name = expr".
// The right side is evaluated with syms, and on success the result is stored
// under name and returned. On failure syms is not modified.
func Evaluate(expr string, syms *Symbols) (float64, error) {
	if strings.ContainsRune(expr, '=') {
		return assign(expr, syms)
	}
	toks, err := Tokenize(expr, syms)
	if err != nil {
		return 0, err
	}
	postfix, err := ToPostfix(toks)
	if err != nil {
		return 0, err
	}
	return EvaluatePostfix(postfix)
}

func assign(expr string, syms *Symbols) (float64, error) {
	name, rhs, _ := strings.Cut(expr, "=")
	if strings.ContainsRune(rhs, '=') {
		return 0, &AssignError{Text: expr, Reason: "more than one '='"}
	}
	name = strings.TrimSpace(name)
	switch {
	case !isIdent(name):
		return 0, &AssignError{Text: expr, Reason: "left side must be a variable name"}
	case reserved(name):
		return 0, &AssignError{Text: expr, Reason: name + " is a function or constant"}
	case syms == nil:
		return 0, &AssignError{Text: expr, Reason: "no symbol table"}
	}
	v, err := Evaluate(strings.TrimSpace(rhs), syms)
	if err != nil {
		return 0, err
	}
	syms.Set(name, v)
	return v, nil
}
