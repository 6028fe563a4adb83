package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calculus"
	"github.com/zephyrtronium/calculus/internal/config"
	"github.com/zephyrtronium/calculus/internal/history"
	"github.com/zephyrtronium/calculus/internal/shell"
)

// rootOptions holds the flags shared by all commands.
type rootOptions struct {
	Config  string
	History string
	Verbose bool
}

// evalOptions holds the flags of the root command.
type evalOptions struct {
	*rootOptions
	In     string
	Given  []string
	Slices int
	Echo   bool
}

func newRootCommand() *cobra.Command {
	root := &rootOptions{}
	opts := &evalOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "calculus [expression...]",
		Short: "Evaluate expressions, derivatives, integrals, and limits",
		Long: `Evaluate arithmetic expressions and run calculus commands.

Each argument is one line: an expression, an assignment, or a command such
as derivative(x^2, 'x'). With no arguments, lines are read from --in or
standard input until exit. Type help for the full command list.

Examples:
  calculus '2+3*4' "derivative(sin(x) + x^3, 'x', 2)"
  calculus --given r=2 'pi*r^2'
  calculus --history ~/.calculus.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().StringVar(&root.Config, "config", "", "path to YAML configuration")
	cmd.PersistentFlags().StringVar(&root.History, "history", "", "path to SQLite history database (default in memory)")
	cmd.PersistentFlags().BoolVarP(&root.Verbose, "verbose", "v", false, "verbose logging")
	cmd.Flags().StringVar(&opts.In, "in", "", "input file (default stdin if no args given)")
	cmd.Flags().StringArrayVar(&opts.Given, "given", nil, "name=value variable definition (any number of times)")
	cmd.Flags().IntVar(&opts.Slices, "slices", calculus.DefaultSlices, "number of subintervals for integration")
	cmd.Flags().BoolVar(&opts.Echo, "echo", false, "print the postfix form of each expression")

	cmd.AddCommand(newHistoryCommand(root))
	return cmd
}

// setup loads the configuration, applies flags over it, and configures
// logging.
func setup(cmd *cobra.Command, opts *rootOptions) (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if opts.Config != "" {
		var err error
		cfg, err = config.Load(opts.Config)
		if err != nil {
			return nil, nil, &ExitError{Code: ExitCommandError, Message: "failed to load config", Err: err}
		}
		log.Debug("loaded config", "path", opts.Config)
	}
	if opts.History != "" {
		cfg.History = opts.History
	}
	return cfg, log, nil
}

// openStore opens the configured history store.
func openStore(cfg *config.Config, log *slog.Logger) (history.Store, error) {
	if cfg.History == "" {
		return new(history.Memory), nil
	}
	log.Debug("opening history", "path", cfg.History)
	db, err := history.Open(cfg.History)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "failed to open history", Err: err}
	}
	return db, nil
}

func runEval(cmd *cobra.Command, opts *evalOptions, args []string) error {
	cfg, log, err := setup(cmd, opts.rootOptions)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("slices") {
		cfg.Slices = opts.Slices
	}
	if err := given(cfg, opts.Given); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return &ExitError{Code: ExitCommandError, Message: "invalid settings", Err: err}
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("error closing history", "error", err)
		}
	}()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if len(args) > 0 || opts.In != "" {
		cfg.Prompt = ""
	}
	sh := shell.New(shell.Options{Config: cfg, Store: store, Logger: log, Echo: opts.Echo})
	log.Debug("session started", "session", sh.Session())

	if len(args) > 0 {
		for _, arg := range args {
			if !sh.Exec(ctx, out, arg) {
				break
			}
		}
	} else {
		in, err := input(cmd, opts.In)
		if err != nil {
			return err
		}
		defer in.Close()
		if err := sh.Run(ctx, in, out); err != nil {
			return &ExitError{Code: ExitFailure, Message: "reading input", Err: err}
		}
	}
	if n := sh.Failed(); n > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d failed", n)}
	}
	return nil
}

// given evaluates name=value definitions into the configured variables. Each
// value may use the variables defined before it.
func given(cfg *config.Config, defs []string) error {
	if len(defs) == 0 {
		return nil
	}
	syms := cfg.Symbols()
	if cfg.Variables == nil {
		cfg.Variables = make(map[string]float64, len(defs))
	}
	for _, d := range defs {
		name, value, ok := strings.Cut(d, "=")
		if !ok {
			return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf(`variable definitions must be "name=value", not %q`, d)}
		}
		name = strings.TrimSpace(name)
		v, err := calculus.Evaluate(value, syms)
		if err != nil {
			return &ExitError{Code: ExitCommandError, Message: "setting " + name, Err: err}
		}
		syms.Set(name, v)
		cfg.Variables[name] = v
	}
	return nil
}

func input(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "failed to open input", Err: err}
	}
	return f, nil
}
