package calculus

// ToPostfix reorders tokens from infix to postfix order using the
// shunting-yard algorithm.
//
// A function is held on the operator stack until the close parenthesis ending
// its argument, then emitted after it. An operator pops every stacked operator
// of the same or higher precedence before being pushed, so all operators,
// including ^, group left to right.
func ToPostfix(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	var ops []Token
	pop := func() Token {
		tok := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		return tok
	}
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNum, TokenVar:
			out = append(out, tok)
		case TokenFunc:
			if _, ok := funcs[tok.Text]; !ok {
				return nil, &TokenError{Col: tok.Pos, Tok: tok}
			}
			ops = append(ops, tok)
		case TokenOpen:
			ops = append(ops, tok)
		case TokenClose:
			for {
				if len(ops) == 0 {
					return nil, &BracketError{Col: tok.Pos}
				}
				top := pop()
				if top.Kind == TokenOpen {
					break
				}
				out = append(out, top)
			}
			if len(ops) > 0 && ops[len(ops)-1].Kind == TokenFunc {
				out = append(out, pop())
			}
		case TokenOp:
			p := binop(tok.Text).prec
			if p == 0 {
				return nil, &TokenError{Col: tok.Pos, Tok: tok}
			}
			for len(ops) > 0 && stackprec(ops[len(ops)-1]) >= p {
				out = append(out, pop())
			}
			ops = append(ops, tok)
		default:
			return nil, &TokenError{Col: tok.Pos, Tok: tok}
		}
	}
	for len(ops) > 0 {
		top := pop()
		if top.Kind == TokenOpen {
			return nil, &BracketError{Col: top.Pos, Open: true}
		}
		out = append(out, top)
	}
	return out, nil
}

// stackprec gets the precedence of a token on the operator stack. Open
// parentheses and functions have precedence 0 so that no operator pops them.
func stackprec(tok Token) int8 {
	if tok.Kind != TokenOp {
		return 0
	}
	return binop(tok.Text).prec
}
