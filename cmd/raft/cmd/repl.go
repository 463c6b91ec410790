package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/raft/foundation/core/log"
	"github.com/msto63/raft/internal/history"
	"github.com/msto63/raft/internal/tui/repl"
)

var (
	replPlain bool
	replFold  bool
)

var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"prompt", "shell"},
	Short:   "Start the interactive prompt",
	Long: `Start the interactive Raft prompt.

Every line is compiled and lowered into one module for the whole session,
so earlier declarations stay visible. Lines and their results are stored in
the history database unless history is disabled in the configuration.

Commands:
  help()    show help
  ir()      print the module generated so far
  clear()   clear the screen
  exit()    leave the prompt

Keys:
  Enter       run the line
  Up/Down     recall earlier lines
  PgUp/PgDn   scroll
  Ctrl+C      quit`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	for _, c := range []*cobra.Command{rootCmd, replCmd} {
		c.Flags().BoolVar(&replPlain, "plain", false, "line mode without the full-screen UI")
		c.Flags().BoolVar(&replFold, "fold", false, "evaluate constant operations at generation time")
	}
}

func runREPL(cmd *cobra.Command, args []string) error {
	plain := replPlain || !isTerminal(os.Stdin)

	// The full-screen UI owns the terminal, so its log goes to a file
	logger, err := newLogger(!plain)
	if err != nil {
		return err
	}

	store, err := openHistory(logger)
	if err != nil {
		logger.WarnWithErr("history disabled", err)
	}
	if store != nil {
		defer store.Close()
	}

	sessionCfg := repl.SessionConfig{
		FrontEnd: newFrontEnd(logger),
		IR:       irOptions(logger, replFold),
		Logger:   logger,
	}
	if store != nil {
		sessionCfg.Store = store
	}
	session := repl.NewSession(sessionCfg)
	logger.Info("session started", mdwlog.Fields{"session_id": session.ID(), "plain": plain})

	if plain {
		return session.RunLines(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), appConfig.REPL.Prompt)
	}
	return repl.Run(session, repl.Config{
		Prompt:   appConfig.REPL.Prompt,
		MaxLines: appConfig.REPL.MaxOutputLines,
	})
}

// openHistory opens the history store and applies the retention policy.
// It returns nil without error when history is disabled.
func openHistory(logger *mdwlog.Logger) (*history.SQLiteStore, error) {
	if appConfig.REPL.DisableHistory {
		return nil, nil
	}

	path := appConfig.History.Path
	if path == "" {
		path = filepath.Join(appConfig.General.DataDir, "history.db")
	}
	store, err := history.NewSQLiteStore(history.Config{Path: path})
	if err != nil {
		return nil, err
	}

	if retention := appConfig.History.Retention.Duration; retention > 0 {
		pruned, err := store.Prune(context.Background(), retention)
		if err != nil {
			logger.WarnWithErr("history prune failed", err)
		} else if pruned > 0 {
			logger.Debug("history pruned", mdwlog.Fields{"entries": pruned})
		}
	}
	return store, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
