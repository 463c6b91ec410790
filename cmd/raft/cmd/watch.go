package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/raft/foundation/core/error"
	"github.com/msto63/raft/internal/watch"
	"github.com/msto63/raft/pkg/core/cache"
)

var (
	watchFold     bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Recompile a program every time it is saved",
	Long: `Watch a Raft program and print its IR after every change.

Compile errors are reported and watching continues. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchFold, "fold", false, "evaluate constant operations at generation time")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before recompiling (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(false)
	if err != nil {
		return err
	}

	debounce := watchDebounce
	if debounce == 0 {
		debounce = appConfig.Watch.Debounce.Duration
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	results := cache.New[string](cache.DefaultConfig())
	last := ""

	compile := func(path string, content []byte) {
		key := cache.SourceKey(string(content), fmt.Sprintf("fold=%t", watchFold))
		if key == last {
			logger.Debug("content unchanged, skipping")
			return
		}
		last = key

		fmt.Fprintf(out, "--- %s (%s)\n", path, time.Now().Format("15:04:05"))
		ir, err := results.GetOrSet(key, func() (string, error) {
			return generate(string(content), irOptions(logger, watchFold))
		})
		if err != nil {
			printError(errOut, rootMessage(err))
			return
		}
		fmt.Fprint(out, ir)
	}

	w, err := watch.New(args[0], compile, watch.Options{Debounce: debounce, Logger: logger})
	if err != nil {
		return err
	}

	content, err := os.ReadFile(w.Path())
	if err != nil {
		return err
	}
	compile(w.Path(), content)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}

// rootMessage strips the wrapping context from structured errors
func rootMessage(err error) error {
	if e, ok := err.(*mdwerror.Error); ok {
		return e.RootCause()
	}
	return err
}
