package calculus

import (
	"math"
	"strings"
)

// node is a node in the expression tree of a postfix sequence.
type node struct {
	kind nodeKind

	// num is the value of a nodeNum.
	num float64
	// name is the name of a variable, a function, or the constant a nodeNum
	// was resolved from.
	name string

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // num
	nodeVar  // lookup(name)
	nodeCall // name is the function, left is the argument

	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ right
)

var opnodes = map[string]nodeKind{
	"+": nodeAdd,
	"-": nodeSub,
	"*": nodeMul,
	"/": nodeDiv,
	"^": nodePow,
}

// tree builds an expression tree from a postfix sequence. Every literal in the
// tree is finite, so the tree always formats as text Evaluate accepts.
func tree(postfix []Token) (*node, error) {
	var stack []*node
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNum:
			n := &node{kind: nodeNum, num: tok.Num}
			if _, ok := constants[tok.Text]; ok {
				n.name = tok.Text
			} else if math.IsNaN(tok.Num) || math.IsInf(tok.Num, 0) {
				return nil, &ValueError{Col: tok.Pos, Text: tok.Text, Value: tok.Num}
			}
			stack = append(stack, n)
		case TokenVar:
			stack = append(stack, &node{kind: nodeVar, name: tok.Text})
		case TokenOp:
			if len(stack) < 2 {
				return nil, &StackError{Col: tok.Pos, Op: tok.Text, Have: len(stack)}
			}
			k, ok := opnodes[tok.Text]
			if !ok {
				return nil, &TokenError{Col: tok.Pos, Tok: tok}
			}
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = &node{kind: k, left: stack[len(stack)-1], right: r}
		case TokenFunc:
			if len(stack) < 1 {
				return nil, &StackError{Col: tok.Pos, Op: tok.Text}
			}
			stack[len(stack)-1] = &node{kind: nodeCall, name: tok.Text, left: stack[len(stack)-1]}
		default:
			return nil, &TokenError{Col: tok.Pos, Tok: tok}
		}
	}
	if len(stack) != 1 {
		return nil, &StackError{Have: len(stack)}
	}
	return stack[0], nil
}

// has returns whether the tree uses the variable name.
func (n *node) has(name string) bool {
	if n == nil {
		return false
	}
	if n.kind == nodeVar && n.name == name {
		return true
	}
	return n.left.has(name) || n.right.has(name)
}

// prec gets the precedence of the node's operator, with operands binding
// tighter than any operator.
func (n *node) prec() int8 {
	switch n.kind {
	case nodeAdd, nodeSub:
		return 1
	case nodeMul, nodeDiv:
		return 2
	case nodePow:
		return 3
	default:
		return 4
	}
}

// String formats the tree as an expression that tokenizes and parses back to
// an equivalent tree. Since every operator groups left to right, only right
// operands of equal precedence need parentheses.
func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		switch {
		case n.name != "":
			b.WriteString(n.name)
		case n.num == 0:
			// Includes negative zero.
			b.WriteByte('0')
		case n.num < 0:
			// There is no unary minus.
			b.WriteString("(0 - ")
			b.WriteString(decimal(-n.num))
			b.WriteByte(')')
		default:
			b.WriteString(decimal(n.num))
		}
	case nodeVar:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.fmtoperand(b, n.left, false)
		switch n.kind {
		case nodeAdd:
			b.WriteString(" + ")
		case nodeSub:
			b.WriteString(" - ")
		case nodeMul:
			b.WriteByte('*')
		case nodeDiv:
			b.WriteByte('/')
		case nodePow:
			b.WriteByte('^')
		}
		n.fmtoperand(b, n.right, true)
	default:
		panic("calculus: invalid node kind after writing " + b.String())
	}
}

func (n *node) fmtoperand(b *strings.Builder, c *node, right bool) {
	p, q := n.prec(), c.prec()
	if q < p || right && q == p {
		b.WriteByte('(')
		c.fmt(b)
		b.WriteByte(')')
		return
	}
	c.fmt(b)
}

// The following constructors fold constant arithmetic and drop identities so
// that derivatives stay readable. Only literal numbers are folded; named
// constants like pi are kept by name.

func lit(v float64) *node {
	return &node{kind: nodeNum, num: v}
}

func (n *node) islit() bool {
	return n.kind == nodeNum && n.name == ""
}

func (n *node) is(v float64) bool {
	return n.islit() && n.num == v
}

// fold returns a literal for v if both operands are literals and v is finite.
func fold(a, b *node, v func() float64) *node {
	if !a.islit() || !b.islit() {
		return nil
	}
	r := v()
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	return lit(r)
}

func add(a, b *node) *node {
	if r := fold(a, b, func() float64 { return a.num + b.num }); r != nil {
		return r
	}
	switch {
	case a.is(0):
		return b
	case b.is(0):
		return a
	}
	return &node{kind: nodeAdd, left: a, right: b}
}

func sub(a, b *node) *node {
	if r := fold(a, b, func() float64 { return a.num - b.num }); r != nil {
		return r
	}
	if b.is(0) {
		return a
	}
	return &node{kind: nodeSub, left: a, right: b}
}

func mul(a, b *node) *node {
	if r := fold(a, b, func() float64 { return a.num * b.num }); r != nil {
		return r
	}
	if b.islit() {
		// Keep literal coefficients on the left.
		a, b = b, a
	}
	switch {
	case a.is(0):
		return a
	case a.is(1):
		return b
	case a.islit() && b.kind == nodeMul && b.left.islit():
		// c*(d*u) = (c*d)*u
		if c := fold(a, b.left, func() float64 { return a.num * b.left.num }); c != nil {
			return mul(c, b.right)
		}
	}
	return &node{kind: nodeMul, left: a, right: b}
}

func div(a, b *node) *node {
	if !b.is(0) {
		if r := fold(a, b, func() float64 { return a.num / b.num }); r != nil {
			return r
		}
	}
	switch {
	case a.is(0) && !b.is(0):
		return a
	case b.is(1):
		return a
	}
	return &node{kind: nodeDiv, left: a, right: b}
}

func pow(a, b *node) *node {
	if r := fold(a, b, func() float64 { return math.Pow(a.num, b.num) }); r != nil {
		return r
	}
	switch {
	case b.is(0):
		return lit(1)
	case b.is(1):
		return a
	}
	return &node{kind: nodePow, left: a, right: b}
}

func call(name string, arg *node) *node {
	return &node{kind: nodeCall, name: name, left: arg}
}
