package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// historyOptions holds flags for the history command.
type historyOptions struct {
	*rootOptions
	Session string
	JSON    bool
}

func newHistoryCommand(root *rootOptions) *cobra.Command {
	opts := &historyOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored calculations",
		Long: `List the calculations recorded in the history database, oldest
session first.

Examples:
  calculus history --history ~/.calculus.db
  calculus history --history ~/.calculus.db --session 01927c4e-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "list only this session")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print entries as JSON lines")
	return cmd
}

func runHistory(cmd *cobra.Command, opts *historyOptions) error {
	cfg, log, err := setup(cmd, opts.rootOptions)
	if err != nil {
		return err
	}
	if cfg.History == "" {
		return &ExitError{Code: ExitCommandError, Message: "no history database; use --history or set history in the config"}
	}
	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), opts.Session)
	if err != nil {
		return &ExitError{Code: ExitFailure, Message: "failed to read history", Err: err}
	}
	out := cmd.OutOrStdout()
	if opts.JSON {
		enc := json.NewEncoder(out)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return nil
	}
	session := ""
	for _, e := range entries {
		if e.Session != session {
			session = e.Session
			fmt.Fprintf(out, "Session %s:\n", session)
		}
		if e.Failed {
			fmt.Fprintf(out, "  %d. %s -> error: %s\n", e.Seq, e.Input, e.Result)
			continue
		}
		fmt.Fprintf(out, "  %d. %s = %s\n", e.Seq, e.Input, e.Result)
	}
	return nil
}
