// Package config loads calculator settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calculus"
)

// Config holds the settings of a calculator session.
type Config struct {
	// Prompt is printed before each line read interactively.
	Prompt string `yaml:"prompt"`
	// History is the path of the SQLite history database. Empty keeps
	// history in memory.
	History string `yaml:"history"`
	// Slices is the number of subintervals for integration.
	Slices int `yaml:"slices"`
	// Step is the offset from the point for limits and continuity.
	Step float64 `yaml:"step"`
	// Tolerance is the largest difference treated as equal by limits and
	// continuity.
	Tolerance float64 `yaml:"tolerance"`
	// TextSubstitution evaluates functions by substituting into their text.
	TextSubstitution bool `yaml:"text_substitution"`
	// Variables are defined at the start of each session.
	Variables map[string]float64 `yaml:"variables"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Prompt:    "> ",
		Slices:    calculus.DefaultSlices,
		Step:      calculus.DefaultStep,
		Tolerance: calculus.DefaultTolerance,
	}
}

// Load reads a YAML file over the defaults. Unknown fields are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the numeric settings are usable and that every
// variable has a name the calculator can assign.
func (c *Config) Validate() error {
	if _, err := calculus.Compile("0", "x", append(c.Options(), calculus.Step(c.Step))...); err != nil {
		return err
	}
	for name := range c.Variables {
		if _, err := calculus.Compile("0", name); err != nil {
			return fmt.Errorf("variable %w", err)
		}
	}
	return nil
}

// Options returns the engine options for integration, limits, and
// continuity. Step is left to the caller, since it only applies to limits.
func (c *Config) Options() []calculus.Option {
	opts := []calculus.Option{calculus.Slices(c.Slices), calculus.Tolerance(c.Tolerance)}
	if c.TextSubstitution {
		opts = append(opts, calculus.TextSubstitution())
	}
	return opts
}

// Symbols returns a new symbol table holding the configured variables.
func (c *Config) Symbols() *calculus.Symbols {
	syms := calculus.NewSymbols()
	for name, v := range c.Variables {
		syms.Set(name, v)
	}
	return syms
}
