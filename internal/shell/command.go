// Package shell implements the calculator's command language and its
// read-eval-print loop.
package shell

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zephyrtronium/calculus"
)

// Kind is the kind of a command line.
type Kind int8

const (
	KindEmpty Kind = iota
	KindEval
	KindDerivative
	KindIntegrate
	KindLimit
	KindContinuity
	KindSlope
	KindHistory
	KindVars
	KindHelp
	KindExit
)

var kindNames = [...]string{
	KindEmpty:      "empty",
	KindEval:       "eval",
	KindDerivative: "derivative",
	KindIntegrate:  "integrate",
	KindLimit:      "limit",
	KindContinuity: "continuity",
	KindSlope:      "slope",
	KindHistory:    "history",
	KindVars:       "vars",
	KindHelp:       "help",
	KindExit:       "exit",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Command is a parsed command line.
type Command struct {
	Kind Kind
	// Expr is the expression to evaluate or operate on.
	Expr string
	// Var is the variable of a derivative. Other calculus commands use x.
	Var string
	// Order is the order of a derivative or slope.
	Order uint
	// Point is the point of a limit, continuity check, or slope, or the
	// start of an integral.
	Point float64
	// End is the end of an integral.
	End float64
	// Side is the side of a limit.
	Side calculus.Side
}

// ErrInvalidFormat is the sentinel for calculus commands that do not match
// their grammar.
var ErrInvalidFormat = errors.New("invalid command format")

// FormatError is a calculus command that does not match its grammar.
type FormatError struct {
	// Command is the name of the command.
	Command string
	// Usage is the form the command should take.
	Usage string
}

func (err *FormatError) Error() string {
	return "invalid " + err.Command + " format. Use: " + err.Usage
}

func (err *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

const num = `-?[\d.]+`

var (
	calcRE       = regexp.MustCompile(`^(derivative|integrate|limit|continuity|slope)\s*\(`)
	derivativeRE = regexp.MustCompile(`^derivative\s*\((.+),\s*'(\w+)'(?:,\s*(\d+))?\s*\)$`)
	integrateRE  = regexp.MustCompile(`^integrate\s*\((.+),\s*(` + num + `),\s*(` + num + `)\s*\)$`)
	limitRE      = regexp.MustCompile(`^limit\s*\((.+),\s*(` + num + `)(?:,\s*'(left|right)')?\s*\)$`)
	continuityRE = regexp.MustCompile(`^continuity\s*\((.+),\s*(` + num + `)\s*\)$`)
	slopeRE      = regexp.MustCompile(`^slope\s*\((.+),\s*(` + num + `)(?:,\s*(\d+))?\s*\)$`)
)

var usage = map[Kind]string{
	KindDerivative: "derivative(function, 'variable', order)",
	KindIntegrate:  "integrate(function, start, end)",
	KindLimit:      "limit(function, point, 'left' or 'right')",
	KindContinuity: "continuity(function, point)",
	KindSlope:      "slope(function, point, order)",
}

// Parse parses a command line. Lines that start like a calculus command must
// match that command's grammar; any other line is an expression for
// calculus.Evaluate.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return Command{Kind: KindEmpty}, nil
	case "history":
		return Command{Kind: KindHistory}, nil
	case "vars":
		return Command{Kind: KindVars}, nil
	case "help":
		return Command{Kind: KindHelp}, nil
	case "exit":
		return Command{Kind: KindExit}, nil
	}
	m := calcRE.FindStringSubmatch(line)
	if m == nil {
		return Command{Kind: KindEval, Expr: line}, nil
	}
	var (
		cmd Command
		ok  bool
	)
	switch m[1] {
	case "derivative":
		cmd, ok = parseDerivative(line)
	case "integrate":
		cmd, ok = parseIntegrate(line)
	case "limit":
		cmd, ok = parseLimit(line)
	case "continuity":
		cmd, ok = parseContinuity(line)
	case "slope":
		cmd, ok = parseSlope(line)
	}
	if !ok {
		return Command{}, &FormatError{Command: m[1], Usage: usage[cmd.Kind]}
	}
	return cmd, nil
}

func parseDerivative(line string) (Command, bool) {
	cmd := Command{Kind: KindDerivative, Order: 1}
	m := derivativeRE.FindStringSubmatch(line)
	if m == nil {
		return cmd, false
	}
	cmd.Expr, cmd.Var = strings.TrimSpace(m[1]), m[2]
	if m[3] != "" {
		n, err := strconv.ParseUint(m[3], 10, 0)
		if err != nil {
			return cmd, false
		}
		cmd.Order = uint(n)
	}
	return cmd, true
}

func parseIntegrate(line string) (Command, bool) {
	cmd := Command{Kind: KindIntegrate, Var: "x"}
	m := integrateRE.FindStringSubmatch(line)
	if m == nil {
		return cmd, false
	}
	var err1, err2 error
	cmd.Expr = strings.TrimSpace(m[1])
	cmd.Point, err1 = strconv.ParseFloat(m[2], 64)
	cmd.End, err2 = strconv.ParseFloat(m[3], 64)
	return cmd, err1 == nil && err2 == nil
}

func parseLimit(line string) (Command, bool) {
	cmd := Command{Kind: KindLimit, Var: "x"}
	m := limitRE.FindStringSubmatch(line)
	if m == nil {
		return cmd, false
	}
	var err error
	cmd.Expr = strings.TrimSpace(m[1])
	cmd.Point, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return cmd, false
	}
	cmd.Side, err = calculus.ParseSide(m[3])
	return cmd, err == nil
}

func parseContinuity(line string) (Command, bool) {
	cmd := Command{Kind: KindContinuity, Var: "x"}
	m := continuityRE.FindStringSubmatch(line)
	if m == nil {
		return cmd, false
	}
	var err error
	cmd.Expr = strings.TrimSpace(m[1])
	cmd.Point, err = strconv.ParseFloat(m[2], 64)
	return cmd, err == nil
}

func parseSlope(line string) (Command, bool) {
	cmd := Command{Kind: KindSlope, Var: "x", Order: 1}
	m := slopeRE.FindStringSubmatch(line)
	if m == nil {
		return cmd, false
	}
	var err error
	cmd.Expr = strings.TrimSpace(m[1])
	cmd.Point, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return cmd, false
	}
	if m[3] != "" {
		n, err := strconv.ParseUint(m[3], 10, 0)
		if err != nil {
			return cmd, false
		}
		cmd.Order = uint(n)
	}
	return cmd, true
}

// Help returns the help text.
func Help() string {
	var b strings.Builder
	b.WriteString("Enter an expression to evaluate it, or one of:\n")
	rows := [][2]string{
		{"name = expression", "assign a variable"},
		{usage[KindDerivative], "symbolic derivative; order defaults to 1"},
		{usage[KindIntegrate], "definite integral over x"},
		{usage[KindLimit], "limit as x approaches point"},
		{usage[KindContinuity], "whether the function is continuous at x = point"},
		{usage[KindSlope], "numeric derivative at x = point; order defaults to 1"},
		{"history", "show this session's calculations"},
		{"vars", "show defined variables"},
		{"exit", "quit"},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-44s %s\n", r[0], r[1])
	}
	fmt.Fprintf(&b, "Operators: %s\n", strings.Join(strings.Split(calculus.Operators, ""), " "))
	fmt.Fprintf(&b, "Functions: %s\n", strings.Join(calculus.Funcs(), " "))
	fmt.Fprintf(&b, "Constants: %s\n", strings.Join(calculus.Constants(), " "))
	return b.String()
}
