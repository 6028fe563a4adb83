package shell

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculus/internal/config"
	"github.com/zephyrtronium/calculus/internal/history"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestShell(t *testing.T, cfg *config.Config) *Shell {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	return New(Options{Config: cfg, Logger: discard(), Session: "test"})
}

// exec runs one line and returns its output.
func exec(t *testing.T, s *Shell, line string) string {
	t.Helper()
	var b bytes.Buffer
	s.Exec(context.Background(), &b, line)
	return b.String()
}

func TestTranscript(t *testing.T) {
	cfg := config.Default()
	// Four slices integrate 2*x over [0, 10] exactly.
	cfg.Slices = 4
	s := newTestShell(t, cfg)
	lines := []string{
		"2+3*4",
		"x = 5",
		"x*2",
		"2^3^2",
		"10/0",
		"foo + 1",
		"derivative(2*x^2 + 3*x, 'x')",
		"derivative(sin(x) + x^3, 'x', 2)",
		"integrate(2*x, 0, 10)",
		"limit(x, 0, 'left')",
		"continuity(x^2, 3)",
		"continuity(1/x, 0)",
		"limit(x)",
		"vars",
		"history",
		"exit",
	}
	var b bytes.Buffer
	for _, line := range lines {
		b.WriteString("> " + line + "\n")
		s.Exec(context.Background(), &b, line)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "transcript", b.Bytes())
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Prompt = "calc> "
	s := newTestShell(t, cfg)
	in := strings.NewReader("1+1\n\nexit\n3*3\n")
	var out bytes.Buffer
	require.NoError(t, s.Run(context.Background(), in, &out))
	assert.Equal(t, "calc> Result: 2\ncalc> calc> Exiting... Goodbye!\n", out.String())
}

func TestRunEOF(t *testing.T) {
	cfg := config.Default()
	cfg.Prompt = ""
	s := newTestShell(t, cfg)
	var out bytes.Buffer
	require.NoError(t, s.Run(context.Background(), strings.NewReader("2^10"), &out))
	assert.Equal(t, "Result: 1024\n", out.String())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newTestShell(t, nil)
	err := s.Run(ctx, strings.NewReader("1\n"), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExec(t *testing.T) {
	s := newTestShell(t, nil)
	cases := []struct {
		line string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"vars", "No variables defined.\n"},
		{"history", "No history yet.\n"},
		{"sqrt(0-1)", "Result: NaN\n"},
		{"log(0)", "Result: -Inf\n"},
		{"x = 1 = 2", "Error: invalid assignment \"x = 1 = 2\": more than one '='\n"},
		{"pi = 3", "Error: invalid assignment \"pi = 3\": pi is a function or constant\n"},
		{"(1", "Error: 1: open parenthesis with no close parenthesis\n"},
		{"derivative(x^2, 'pi')", "Error: \"pi\": invalid variable\n"},
		{"derivative(x^3, 'x', 0)", "Derivative Result: x^3\n"},
		{"derivative(x^2)", "Error: invalid derivative format. Use: derivative(function, 'variable', order)\n"},
		{"integrate(x, a, b)", "Error: invalid integrate format. Use: integrate(function, start, end)\n"},
		{"continuity(x)", "Error: invalid continuity format. Use: continuity(function, point)\n"},
		{"slope(x, 1.2.3)", "Error: invalid slope format. Use: slope(function, point, order)\n"},
		{"limit(1/x, 0, 'up')", "Error: invalid limit format. Use: limit(function, point, 'left' or 'right')\n"},
		{"limit(2*x, 0, 'right')", "Limit Result: 0\n"},
		{"EXIT", "Exiting... Goodbye!\n"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, exec(t, s, c.line), "line %q", c.line)
	}
}

func TestExecLimitDoesNotExist(t *testing.T) {
	s := newTestShell(t, nil)
	out := exec(t, s, "limit(1/x, 0)")
	assert.True(t, strings.HasPrefix(out, "Error: the limit at 0 does not exist (left -"), out)
}

// parseResult parses the number after the label of a result line.
func parseResult(out string) (float64, error) {
	_, v, _ := strings.Cut(strings.TrimSpace(out), ": ")
	return strconv.ParseFloat(v, 64)
}

func TestExecSlope(t *testing.T) {
	s := newTestShell(t, nil)
	exec(t, s, "a = 3")
	out := exec(t, s, "slope(a*x^2, 2)")
	require.True(t, strings.HasPrefix(out, "Slope Result: "), out)
	v, err := parseResult(out)
	require.NoError(t, err)
	assert.InDelta(t, 12, v, 1e-6)

	out = exec(t, s, "slope(x^3, 2, 2)")
	v, err = parseResult(out)
	require.NoError(t, err)
	assert.InDelta(t, 12, v, 1e-4)
}

func TestExecEcho(t *testing.T) {
	s := New(Options{Logger: discard(), Echo: true})
	assert.Equal(t, "Postfix: 2 3 4 * +\nResult: 14\n", exec(t, s, "2+3*4"))
	assert.Equal(t, "Postfix: 0 sin 2 ^\nResult: 0\n", exec(t, s, "sin(0)^2"))
	assert.Equal(t, "Result: 2\n", exec(t, s, "y = 2"))
	assert.Equal(t, "Error: 1: invalid character '$'\n", exec(t, s, "$"))
}

func TestConfigVariables(t *testing.T) {
	cfg := config.Default()
	cfg.Variables = map[string]float64{"g": 9.81}
	cfg.TextSubstitution = true
	s := newTestShell(t, cfg)
	assert.Equal(t, "g = 9.81\n", exec(t, s, "vars"))
	assert.Equal(t, "Result: 19.62\n", exec(t, s, "2*g"))
	// Text substitution cannot evaluate exp(x).
	assert.Equal(t, "Error: 3: unknown function or variable \"p\"\n", exec(t, s, "integrate(exp(x), 0, 1)"))
}

func TestNormalizedInput(t *testing.T) {
	s := newTestShell(t, nil)
	// The decomposed and composed forms name the same variable.
	exec(t, s, "cafe\u0301 = 4")
	assert.Equal(t, "Result: 8\n", exec(t, s, "caf\u00e9*2"))
}

func TestSQLiteHistory(t *testing.T) {
	ctx := context.Background()
	db, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	s := New(Options{Store: db, Logger: discard()})
	exec(t, s, "1+2")
	exec(t, s, "1/0")
	exec(t, s, "vars")

	entries, err := db.List(ctx, s.Session())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, history.Entry{Session: s.Session(), Seq: 1, Input: "1+2", Result: "3"}, entries[0])
	assert.True(t, entries[1].Failed)
	assert.Equal(t, int64(2), entries[1].Seq)
	assert.Equal(t, 1, s.Failed())

	// A second session on the same store sees only its own lines.
	s2 := New(Options{Store: db, Logger: discard()})
	assert.NotEqual(t, s.Session(), s2.Session())
	assert.Equal(t, "No history yet.\n", exec(t, s2, "history"))
}

func TestHelp(t *testing.T) {
	h := Help()
	for _, want := range []string{"derivative(function, 'variable', order)", "sin", "pi", "+ - * / ^"} {
		assert.Contains(t, h, want)
	}
	s := newTestShell(t, nil)
	assert.Equal(t, h, exec(t, s, "help"))
}
