package cmd

import (
	"context"
	"fmt"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/msto63/raft/pkg/core/health"
	"github.com/msto63/raft/pkg/core/version"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, data directory and history database",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(false)
	if err != nil {
		return err
	}

	registry := health.NewRegistry(version.CLI)

	registry.RegisterFunc("config", func(ctx context.Context) health.CheckResult {
		if err := appConfig.Validate(); err != nil {
			return health.Unhealthy("config", err)
		}
		return health.Healthy("config", "valid")
	})

	registry.Register(health.DirWritable("data_dir", appConfig.General.DataDir))

	registry.RegisterFunc("history", func(ctx context.Context) health.CheckResult {
		if appConfig.REPL.DisableHistory {
			return health.CheckResult{Status: health.StatusDegraded, Message: "disabled"}
		}
		store, err := openHistory(logger)
		if err != nil {
			return health.Unhealthy("history", err)
		}
		defer store.Close()
		return health.Healthy("history", "database opened")
	})

	registry.RegisterFunc("highlight", func(ctx context.Context) health.CheckResult {
		style, formatter := appConfig.Highlight.Style, appConfig.Highlight.Formatter
		if _, ok := styles.Registry[style]; !ok {
			return health.Unhealthy("highlight", fmt.Errorf("unknown style %q", style))
		}
		if _, ok := formatters.Registry[formatter]; !ok {
			return health.Unhealthy("highlight", fmt.Errorf("unknown formatter %q", formatter))
		}
		return health.Healthy("highlight", style+"/"+formatter)
	})

	registry.RegisterFunc("externs", func(ctx context.Context) health.CheckResult {
		n := len(appConfig.Backend.Externs)
		if n == 0 {
			return health.CheckResult{Status: health.StatusDegraded, Message: "no external functions declared"}
		}
		return health.Healthy("externs", fmt.Sprintf("%d declared", n))
	})

	report := registry.Check(cmd.Context())

	out := cmd.OutOrStdout()
	for _, check := range report.Checks {
		fmt.Fprintf(out, "%s %-10s %s\n", statusMark(check.Status), check.Name, check.Message)
	}
	fmt.Fprintf(out, "\n%s\n", report)

	if report.Status == health.StatusUnhealthy {
		return fmt.Errorf("%d check(s) failed", countFailed(report))
	}
	return nil
}

func statusMark(s health.Status) string {
	switch s {
	case health.StatusHealthy:
		return historyOKStyle.Render("ok  ")
	case health.StatusDegraded:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Render("warn")
	default:
		return historyErrStyle.Render("fail")
	}
}

func countFailed(report *health.Report) int {
	n := 0
	for _, check := range report.Checks {
		if check.Status == health.StatusUnhealthy {
			n++
		}
	}
	return n
}
