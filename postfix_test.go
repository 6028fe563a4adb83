package calculus

import (
	"errors"
	"strings"
	"testing"
)

// rpn joins the text of a token sequence.
func rpn(toks []Token) string {
	s := make([]string, len(toks))
	for i, tok := range toks {
		s[i] = tok.Text
	}
	return strings.Join(s, " ")
}

func TestToPostfix(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"precedence", "2+3*4", "2 3 4 * +"},
		{"parens", "(2+3)*4", "2 3 + 4 *"},
		{"sub-left", "1-2-3", "1 2 - 3 -"},
		{"div-left", "8/2/2", "8 2 / 2 /"},
		{"pow-left", "2^3^2", "2 3 ^ 2 ^"},
		{"pow-mul", "2^3*4", "2 3 ^ 4 *"},
		{"mul-pow", "4*2^3", "4 2 3 ^ *"},
		{"func", "sin(x)*2", "x sin 2 *"},
		{"func-arg", "2*sin(x+1)", "2 x 1 + sin *"},
		{"func-bare", "sin x", "x sin"},
		{"func-nested", "exp(log(x))", "x log exp"},
		{"nested-parens", "((x))", "x"},
		{"pow-func", "cos(x)^2", "x cos 2 ^"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src, nil, "x")
			if err != nil {
				t.Fatal(c.src, "failed to tokenize:", err)
			}
			post, err := ToPostfix(toks)
			if err != nil {
				t.Fatal(c.src, "failed to convert:", err)
			}
			if got := rpn(post); got != c.want {
				t.Errorf("%q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestToPostfixUnknownToken(t *testing.T) {
	one := Token{Kind: TokenNum, Num: 1, Pos: 1}
	cases := []struct {
		name string
		toks []Token
	}{
		{"none", []Token{{}}},
		{"op", []Token{one, {Kind: TokenOp, Text: "%", Pos: 2}, one}},
		{"func", []Token{{Kind: TokenFunc, Text: "sinh", Pos: 1}, {Kind: TokenOpen, Text: "(", Pos: 5}, one, {Kind: TokenClose, Text: ")", Pos: 7}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			post, err := ToPostfix(c.toks)
			if !errors.Is(err, ErrMalformedExpression) {
				t.Fatalf("want malformed expression, got %v, %v", rpn(post), err)
			}
			var terr *TokenError
			if !errors.As(err, &terr) {
				t.Errorf("want *TokenError, got %T", err)
			}
		})
	}
}

func TestToPostfixBrackets(t *testing.T) {
	cases := []struct {
		src  string
		pos  int
		open bool
	}{
		{")", 1, false},
		{"1)", 2, false},
		{"sin(1))", 7, false},
		{"(1", 1, true},
		{"((1)", 1, true},
		{"1+(2*(3)", 3, true},
	}
	for _, c := range cases {
		toks, err := Tokenize(c.src, nil)
		if err != nil {
			t.Fatal(c.src, "failed to tokenize:", err)
		}
		_, err = ToPostfix(toks)
		if !errors.Is(err, ErrUnbalancedParentheses) {
			t.Errorf("%q: want unbalanced parentheses, got %v", c.src, err)
			continue
		}
		var berr *BracketError
		if !errors.As(err, &berr) {
			t.Errorf("%q: want *BracketError, got %T", c.src, err)
			continue
		}
		if berr.Col != c.pos || berr.Open != c.open {
			t.Errorf("%q: want error at %d (open %t), got %d (open %t)", c.src, c.pos, c.open, berr.Col, berr.Open)
		}
	}
}
