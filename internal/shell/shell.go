package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/zephyrtronium/calculus"
	"github.com/zephyrtronium/calculus/internal/config"
	"github.com/zephyrtronium/calculus/internal/history"
)

// Options configures a Shell.
type Options struct {
	// Config holds engine and prompt settings. Nil uses config.Default.
	Config *config.Config
	// Store records each evaluated line. Nil keeps history in memory.
	Store history.Store
	// Logger receives diagnostics. Nil uses slog.Default.
	Logger *slog.Logger
	// Echo prints the postfix form of each evaluated expression.
	Echo bool
	// Session is the history session ID. Empty starts a new session.
	Session string
}

// Shell is one calculator session. It owns a symbol table, so a Shell must
// not be used concurrently.
type Shell struct {
	cfg     *config.Config
	syms    *calculus.Symbols
	store   history.Store
	log     *slog.Logger
	echo    bool
	session string
	seq     int64
	failed  int
}

// New creates a shell session.
func New(opts Options) *Shell {
	s := Shell{
		cfg:     opts.Config,
		store:   opts.Store,
		log:     opts.Logger,
		echo:    opts.Echo,
		session: opts.Session,
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}
	if s.store == nil {
		s.store = new(history.Memory)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.session == "" {
		s.session = history.NewSession()
	}
	s.syms = s.cfg.Symbols()
	return &s
}

// Session returns the session's history ID.
func (s *Shell) Session() string {
	return s.session
}

// Failed returns the number of lines that produced errors.
func (s *Shell) Failed() int {
	return s.failed
}

// Symbols returns the session's symbol table.
func (s *Shell) Symbols() *calculus.Symbols {
	return s.syms
}

// Run reads lines from r and executes them, writing output to w, until exit,
// the end of r, or the cancellation of ctx.
func (s *Shell) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.cfg.Prompt != "" {
			io.WriteString(w, s.cfg.Prompt)
		}
		if !sc.Scan() {
			return sc.Err()
		}
		if !s.Exec(ctx, w, sc.Text()) {
			return nil
		}
	}
}

// Exec executes one line and writes its output to w. It returns false if the
// line ends the session.
func (s *Shell) Exec(ctx context.Context, w io.Writer, line string) bool {
	line = strings.TrimSpace(history.Normalize(line))
	cmd, err := Parse(line)
	if err != nil {
		s.log.Debug("command failed", "line", line, "error", err)
		fmt.Fprintf(w, "Error: %v\n", err)
		s.record(ctx, line, err.Error(), true)
		return true
	}
	s.log.Debug("command", "kind", cmd.Kind)
	switch cmd.Kind {
	case KindEmpty:
		return true
	case KindExit:
		fmt.Fprintln(w, "Exiting... Goodbye!")
		return false
	case KindHelp:
		io.WriteString(w, Help())
		return true
	case KindVars:
		s.vars(w)
		return true
	case KindHistory:
		s.history(ctx, w)
		return true
	}
	label, result, err := s.calc(w, cmd)
	if err != nil {
		s.log.Debug("command failed", "kind", cmd.Kind, "line", line, "error", err)
		fmt.Fprintf(w, "Error: %v\n", err)
		s.record(ctx, line, err.Error(), true)
		return true
	}
	fmt.Fprintf(w, "%s: %s\n", label, result)
	s.record(ctx, line, result, false)
	return true
}

// calc runs a calculus command or evaluates an expression, returning the
// label and text of its result.
func (s *Shell) calc(w io.Writer, cmd Command) (label, result string, err error) {
	opts := append(s.cfg.Options(), calculus.WithSymbols(s.syms))
	switch cmd.Kind {
	case KindEval:
		if s.echo && !strings.Contains(cmd.Expr, "=") {
			s.postfix(w, cmd.Expr)
		}
		v, err := calculus.Evaluate(cmd.Expr, s.syms)
		return "Result", fmtnum(v), err
	case KindDerivative:
		d, err := calculus.Derivative(cmd.Expr, cmd.Var, cmd.Order, calculus.WithSymbols(s.syms))
		return "Derivative Result", d, err
	case KindIntegrate:
		v, err := calculus.Integrate(cmd.Expr, cmd.Var, cmd.Point, cmd.End, opts...)
		return "Result (Integration)", fmtnum(v), err
	case KindLimit:
		opts = append(opts, calculus.Step(s.cfg.Step))
		v, err := calculus.Limit(cmd.Expr, cmd.Var, cmd.Point, cmd.Side, opts...)
		return "Limit Result", fmtnum(v), err
	case KindContinuity:
		opts = append(opts, calculus.Step(s.cfg.Step))
		ok, err := calculus.IsContinuousAt(cmd.Expr, cmd.Var, cmd.Point, opts...)
		return "Is the function continuous at the point?", strconv.FormatBool(ok), err
	case KindSlope:
		v, err := calculus.Slope(cmd.Expr, cmd.Var, cmd.Point, cmd.Order, opts...)
		return "Slope Result", fmtnum(v), err
	default:
		panic("shell: unexpected command kind " + cmd.Kind.String())
	}
}

// postfix writes the postfix form of expr, if it has one.
func (s *Shell) postfix(w io.Writer, expr string) {
	toks, err := calculus.Tokenize(expr, s.syms)
	if err != nil {
		return
	}
	post, err := calculus.ToPostfix(toks)
	if err != nil {
		return
	}
	text := make([]string, len(post))
	for i, tok := range post {
		text[i] = tok.Text
	}
	fmt.Fprintf(w, "Postfix: %s\n", strings.Join(text, " "))
}

func (s *Shell) vars(w io.Writer) {
	names := s.syms.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No variables defined.")
		return
	}
	for _, name := range names {
		v, _ := s.syms.Lookup(name)
		fmt.Fprintf(w, "%s = %s\n", name, fmtnum(v))
	}
}

func (s *Shell) history(ctx context.Context, w io.Writer) {
	entries, err := s.store.List(ctx, s.session)
	if err != nil {
		s.log.Warn("failed to read history", "session", s.session, "error", err)
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return
	}
	fmt.Fprintln(w, "History of calculations:")
	for _, e := range entries {
		if e.Failed {
			fmt.Fprintf(w, "%s -> error: %s\n", e.Input, e.Result)
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", e.Input, e.Result)
	}
}

func (s *Shell) record(ctx context.Context, line, result string, failed bool) {
	s.seq++
	if failed {
		s.failed++
	}
	e := history.Entry{Session: s.session, Seq: s.seq, Input: line, Result: result, Failed: failed}
	if err := s.store.Append(ctx, e); err != nil {
		s.log.Warn("failed to record history", "session", s.session, "seq", s.seq, "error", err)
	}
}

func fmtnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
