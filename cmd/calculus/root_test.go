package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculus/internal/history"
)

// run executes the root command with args and returns stdout and the error.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestArgs(t *testing.T) {
	out, err := run(t, "", "2+3*4", "x = 5", "x*2", "derivative(x^3, 'x')")
	require.NoError(t, err)
	assert.Equal(t, "Result: 14\nResult: 5\nResult: 10\nDerivative Result: 3*x^2\n", out)
}

func TestArgsExit(t *testing.T) {
	out, err := run(t, "", "1", "exit", "2")
	require.NoError(t, err)
	assert.Equal(t, "Result: 1\nExiting... Goodbye!\n", out)
}

func TestArgsFailure(t *testing.T) {
	out, err := run(t, "", "1/0", "foo")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, exitCode(err))
	assert.Contains(t, err.Error(), "2 failed")
	assert.Equal(t, "Error: 2: division by zero\nError: 1: unknown function or variable \"foo\"\n", out)
}

func TestGiven(t *testing.T) {
	out, err := run(t, "", "--given", "r=2", "--given", "d=2*r", "pi*r^2", "d")
	require.NoError(t, err)
	assert.Equal(t, "Result: 12.566370614359172\nResult: 4\n", out)

	_, err = run(t, "", "--given", "r", "r")
	assert.Equal(t, ExitCommandError, exitCode(err))
	_, err = run(t, "", "--given", "pi=3", "pi")
	assert.Equal(t, ExitCommandError, exitCode(err))
}

func TestGivenInfinity(t *testing.T) {
	out, err := run(t, "", "--given", "big=10^400", "big", "derivative(big*x, 'x')")
	assert.Equal(t, ExitFailure, exitCode(err))
	assert.Equal(t, "Result: +Inf\nError: 1: \"big\" is +Inf, which has no decimal form\n", out)
}

func TestStdin(t *testing.T) {
	out, err := run(t, "1+1\nexit\n")
	require.NoError(t, err)
	assert.Equal(t, "> Result: 2\n> Exiting... Goodbye!\n", out)
}

func TestInFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(name, []byte("a = 3\na^2\n"), 0o644))
	out, err := run(t, "", "--in", name)
	require.NoError(t, err)
	assert.Equal(t, "Result: 3\nResult: 9\n", out)

	_, err = run(t, "", "--in", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, ExitCommandError, exitCode(err))
}

func TestEcho(t *testing.T) {
	out, err := run(t, "", "--echo", "1+2")
	require.NoError(t, err)
	assert.Equal(t, "Postfix: 1 2 +\nResult: 3\n", out)
}

func TestSlicesFlag(t *testing.T) {
	out, err := run(t, "", "--slices", "1", "integrate(x^2, 0, 2)")
	require.NoError(t, err)
	assert.Equal(t, "Result (Integration): 4\n", out)

	_, err = run(t, "", "--slices", "0", "1")
	assert.Equal(t, ExitCommandError, exitCode(err))
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("variables:\n  g: 9.81\n"), 0o644))
	out, err := run(t, "", "--config", good, "2*g")
	require.NoError(t, err)
	assert.Equal(t, "Result: 19.62\n", out)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("color: blue\n"), 0o644))
	_, err = run(t, "", "--config", bad, "1")
	assert.Equal(t, ExitCommandError, exitCode(err))
}

func TestHistoryCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	_, err := run(t, "", "--history", db, "1+2", "1/0")
	assert.Equal(t, ExitFailure, exitCode(err))

	out, err := run(t, "", "history", "--history", db)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Session "), out)
	assert.Contains(t, out, "  1. 1+2 = 3\n")
	assert.Contains(t, out, "  2. 1/0 -> error: 2: division by zero\n")

	out, err = run(t, "", "history", "--history", db, "--json")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var e history.Entry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &e))
	assert.Equal(t, int64(1), e.Seq)
	assert.Equal(t, "3", e.Result)

	out, err = run(t, "", "history", "--history", db, "--session", "none")
	require.NoError(t, err)
	assert.Equal(t, "No history yet.\n", out)
}

func TestHistoryCommandNoDatabase(t *testing.T) {
	_, err := run(t, "", "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, exitCode(err))
}

func TestUnknownFlag(t *testing.T) {
	_, err := run(t, "", "--bogus")
	assert.Equal(t, ExitCommandError, exitCode(err))
}
