package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/msto63/raft/internal/history"
)

var (
	historyLimit   int
	historySession string
	historySince   time.Duration
	historyPrune   bool
)

var (
	historyOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	historyErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	historyMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List lines entered at the interactive prompt",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of entries (default from config)")
	historyCmd.Flags().StringVar(&historySession, "session", "", "only entries of this session ID")
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "only entries newer than this age, e.g. 24h")
	historyCmd.Flags().BoolVar(&historyPrune, "prune", false, "delete entries older than the configured retention")
}

func runHistory(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(false)
	if err != nil {
		return err
	}

	store, err := openHistory(logger)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is disabled in the configuration")
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if historyPrune {
		deleted, err := store.Prune(ctx, appConfig.History.Retention.Duration)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pruned %d entries\n", deleted)
		return nil
	}

	filter := history.Filter{SessionID: historySession, Limit: historyLimit}
	if filter.Limit == 0 {
		filter.Limit = appConfig.History.ListLimit
	}
	if historySince > 0 {
		filter.Since = time.Now().Add(-historySince)
	}

	entries, err := store.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, historyMutedStyle.Render("no history entries"))
		return nil
	}

	// Oldest first, like a shell history
	for i := len(entries) - 1; i >= 0; i-- {
		fmt.Fprintln(out, formatEntry(entries[i]))
	}
	return nil
}

func formatEntry(e *history.Entry) string {
	mark := historyOKStyle.Render("ok ")
	result := e.Output
	if !e.OK {
		mark = historyErrStyle.Render("err")
		result = e.Error
	}
	if i := strings.LastIndex(result, "\n"); i >= 0 {
		result = result[i+1:]
	}

	session := e.SessionID
	if len(session) > 8 {
		session = session[:8]
	}
	meta := historyMutedStyle.Render(fmt.Sprintf("%s %s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), session))
	return fmt.Sprintf("%s %s %s  %s", meta, mark, e.Source, historyMutedStyle.Render(result))
}
