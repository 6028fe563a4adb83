package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculus"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calculus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, "", cfg.History)
	assert.Equal(t, 1000, cfg.Slices)
	assert.Equal(t, 1e-5, cfg.Step)
	assert.Equal(t, 1e-5, cfg.Tolerance)
	assert.False(t, cfg.TextSubstitution)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
prompt: "calc> "
history: /tmp/calc.db
slices: 250
tolerance: 1e-3
text_substitution: true
variables:
  g: 9.81
  rate: 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "calc> ", cfg.Prompt)
	assert.Equal(t, "/tmp/calc.db", cfg.History)
	assert.Equal(t, 250, cfg.Slices)
	assert.Equal(t, 1e-5, cfg.Step, "unset fields keep defaults")
	assert.Equal(t, 1e-3, cfg.Tolerance)
	assert.True(t, cfg.TextSubstitution)
	assert.Equal(t, map[string]float64{"g": 9.81, "rate": 0.5}, cfg.Variables)

	syms := cfg.Symbols()
	v, ok := syms.Lookup("g")
	assert.True(t, ok)
	assert.Equal(t, 9.81, v)
	assert.Len(t, cfg.Options(), 3)
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		err  error
	}{
		{"slices", "slices: 0", calculus.ErrInvalidOption},
		{"step", "step: -1", calculus.ErrInvalidOption},
		{"tolerance", "tolerance: 0", calculus.ErrInvalidOption},
		{"var-const", "variables: {pi: 3}", calculus.ErrInvalidVariable},
		{"var-digits", "variables: {x1: 3}", calculus.ErrInvalidVariable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.text))
			assert.ErrorIs(t, err, c.err)
		})
	}

	_, err := Load(writeConfig(t, "slice: 10"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
