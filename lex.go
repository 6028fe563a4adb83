package calculus

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the kind of token.
	Kind TokenKind
	// Num is the value of a number token. Constants and names from a symbol
	// table are resolved to numbers during tokenizing.
	Num float64
	// Text is the source text of the token.
	Text string
	// Pos is the 1-based rune column at which the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind identifies the kind of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a number, including resolved constants and variables.
	TokenNum
	// TokenOp is a binary operator.
	TokenOp
	// TokenFunc is the name of a unary function.
	TokenFunc
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenVar is a free variable, bound only when evaluating.
	TokenVar
)

var tokenKindNames = [...]string{
	TokenNone:  "None",
	TokenNum:   "Num",
	TokenOp:    "Op",
	TokenFunc:  "Func",
	TokenOpen:  "Open",
	TokenClose: "Close",
	TokenVar:   "Var",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the runes which are binary operators.
const Operators = "+-*/^"

type lexer struct {
	src string
	// off is the byte offset of the next rune.
	off int
	// col is the number of runes consumed.
	col int
}

// peek decodes the next rune without consuming it. sz is 0 at the end of the
// input.
func (l *lexer) peek() (r rune, sz int) {
	if l.off >= len(l.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.src[l.off:])
}

func (l *lexer) advance(sz int) {
	l.off += sz
	l.col++
}

// scan consumes the longest run of runes satisfying ok and returns it.
func (l *lexer) scan(ok func(rune) bool) string {
	start := l.off
	for {
		r, sz := l.peek()
		if sz == 0 || !ok(r) {
			return l.src[start:l.off]
		}
		l.advance(sz)
	}
}

func isNumRune(r rune) bool {
	return '0' <= r && r <= '9' || r == '.'
}

// Tokenize scans an expression into tokens. Identifiers are resolved first as
// function names, then as the constants pi and e, then as any of the free
// names, and finally by lookup in syms, which may be nil. Free names become
// TokenVar tokens; all other resolved names become TokenNum.
func Tokenize(src string, syms *Symbols, free ...string) ([]Token, error) {
	l := lexer{src: src}
	var toks []Token
	for {
		r, sz := l.peek()
		if sz == 0 {
			return toks, nil
		}
		tok := Token{Pos: l.col + 1}
		switch {
		case unicode.IsSpace(r):
			l.advance(sz)
			continue
		case isNumRune(r):
			tok.Text = l.scan(isNumRune)
			v, err := strconv.ParseFloat(tok.Text, 64)
			// Out of range literals parse to infinity, which is what we want.
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return nil, &NumberError{Col: tok.Pos, Text: tok.Text}
			}
			tok.Kind = TokenNum
			tok.Num = v
		case unicode.IsLetter(r):
			tok.Text = l.scan(unicode.IsLetter)
			var err error
			tok, err = resolve(tok, syms, free)
			if err != nil {
				return nil, err
			}
		default:
			l.advance(sz)
			tok.Text = string(r)
			switch {
			case strings.ContainsRune(Operators, r):
				tok.Kind = TokenOp
			case r == '(':
				tok.Kind = TokenOpen
			case r == ')':
				tok.Kind = TokenClose
			default:
				return nil, &CharError{Col: tok.Pos, Char: r}
			}
		}
		toks = append(toks, tok)
	}
}

// resolve sets the kind of an identifier token.
func resolve(tok Token, syms *Symbols, free []string) (Token, error) {
	if _, ok := funcs[tok.Text]; ok {
		tok.Kind = TokenFunc
		return tok, nil
	}
	if v, ok := constants[tok.Text]; ok {
		tok.Kind = TokenNum
		tok.Num = v
		return tok, nil
	}
	for _, name := range free {
		if name == tok.Text {
			tok.Kind = TokenVar
			return tok, nil
		}
	}
	if v, ok := syms.Lookup(tok.Text); ok {
		tok.Kind = TokenNum
		tok.Num = v
		return tok, nil
	}
	return tok, &NameError{Col: tok.Pos, Name: tok.Text}
}

// isIdent returns whether s could be scanned as a single identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
