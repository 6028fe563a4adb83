package calculus

import (
	"errors"
	"strconv"
)

// Sentinel errors for each kind of failure. Every error returned from this
// package matches exactly one of these with errors.Is.
var (
	ErrInvalidCharacter      = errors.New("invalid character")
	ErrUnknownIdentifier     = errors.New("unknown identifier")
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrMalformedExpression   = errors.New("malformed expression")
	ErrInvalidAssignment     = errors.New("invalid assignment")
	ErrLimitDoesNotExist     = errors.New("limit does not exist")
	ErrInvalidVariable       = errors.New("invalid variable")
	ErrInvalidOption         = errors.New("invalid option")
)

// CharError indicates a rune that cannot start any token. It implements
// InputError.
type CharError struct {
	// Col is the position of the rune.
	Col int
	// Char is the offending rune.
	Char rune
}

func (err *CharError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *CharError) Pos() int {
	return err.Col
}

func (err *CharError) Unwrap() error {
	return ErrInvalidCharacter
}

// NameError indicates an identifier that is not a function, a constant, a
// free variable, or a defined variable. It implements InputError.
type NameError struct {
	// Col is the position of the identifier. It is 0 when the name was found
	// unbound during evaluation of a token sequence without positions.
	Col int
	// Name is the identifier.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown function or variable "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

func (err *NameError) Unwrap() error {
	return ErrUnknownIdentifier
}

// BracketError indicates a parenthesis without a partner. It implements
// InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Open is true if the unmatched parenthesis is an open parenthesis.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "open parenthesis with no close parenthesis")
	}
	return errpos(err.Col, "close parenthesis with no open parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrUnbalancedParentheses
}

// NumberError indicates a run of digits and dots that is not a number, such
// as "1.2.3". It implements InputError.
type NumberError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Unwrap() error {
	return ErrMalformedExpression
}

// ValueError indicates a number that has no decimal form, such as a variable
// holding an infinity, where the result must be expression text. It
// implements InputError.
type ValueError struct {
	// Col is the position of the number or variable.
	Col int
	// Text is the literal or variable name.
	Text string
	// Value is the value that cannot be written.
	Value float64
}

func (err *ValueError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Text)+" is "+strconv.FormatFloat(err.Value, 'g', -1, 64)+", which has no decimal form")
}

func (err *ValueError) Pos() int {
	return err.Col
}

func (err *ValueError) Unwrap() error {
	return ErrMalformedExpression
}

// StackError indicates a postfix sequence that does not reduce to exactly one
// value. It implements InputError.
type StackError struct {
	// Col is the position of the operator or function that lacked operands,
	// or 0 if the sequence ended with the wrong number of values.
	Col int
	// Op is the operator or function that lacked operands. It is empty if the
	// sequence ended with the wrong number of values.
	Op string
	// Have is the number of values on the stack at the time of the error.
	Have int
}

func (err *StackError) Error() string {
	if err.Op == "" {
		if err.Have == 0 {
			return "no expression"
		}
		return "expression leaves " + strconv.Itoa(err.Have) + " values instead of one"
	}
	return errpos(err.Col, "missing operand for "+strconv.Quote(err.Op))
}

func (err *StackError) Pos() int {
	return err.Col
}

func (err *StackError) Unwrap() error {
	return ErrMalformedExpression
}

// TokenError indicates a token that cannot appear in an expression, such as
// an operator or function this package does not define. It implements
// InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Tok is the offending token.
	Tok Token
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+err.Tok.Kind.String()+" token "+strconv.Quote(err.Tok.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Unwrap() error {
	return ErrMalformedExpression
}

// ArithError indicates an operator applied to operands it rejects. It
// implements InputError.
type ArithError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator.
	Op string
	// Err is the underlying error, e.g. ErrDivisionByZero.
	Err error
}

func (err *ArithError) Error() string {
	return errpos(err.Col, err.Err.Error())
}

func (err *ArithError) Pos() int {
	return err.Col
}

func (err *ArithError) Unwrap() error {
	return err.Err
}

// AssignError indicates an expression with '=' that is not a valid
// assignment.
type AssignError struct {
	// Text is the whole expression.
	Text string
	// Reason describes the problem.
	Reason string
}

func (err *AssignError) Error() string {
	return "invalid assignment " + strconv.Quote(err.Text) + ": " + err.Reason
}

func (err *AssignError) Unwrap() error {
	return ErrInvalidAssignment
}

// LimitError indicates that the one-sided approximations of a two-sided limit
// disagree.
type LimitError struct {
	// Point is the point at which the limit was taken.
	Point float64
	// Left and Right are the values approaching from each side.
	Left, Right float64
}

func (err *LimitError) Error() string {
	return "the limit at " + fmtnum(err.Point) + " does not exist (left " + fmtnum(err.Left) + ", right " + fmtnum(err.Right) + ")"
}

func (err *LimitError) Unwrap() error {
	return ErrLimitDoesNotExist
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

func fmtnum(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// InputError is an error with position information. Every error resulting from
// invalid expression text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*CharError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*StackError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*ValueError)(nil)
	_ InputError = (*ArithError)(nil)
)
