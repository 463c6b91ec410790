// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     cmd
// Description: Root command and shared setup for the raft CLI
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/raft/foundation/core/log"
	"github.com/msto63/raft/foundation/raft"
	"github.com/msto63/raft/internal/irgen"
	"github.com/msto63/raft/pkg/core/config"
	"github.com/msto63/raft/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	// Set by loadConfig before any subcommand runs
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "raft",
	Short: "Raft - expression language front end",
	Long: `Raft tokenizes and parses a small expression language and lowers it
to a textual SSA listing.

Without a subcommand the interactive prompt is started.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runREPL,
}

// Execute runs the root command
func Execute() error {
	defer logging.CloseAll()

	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $RAFT_CONFIG or ./raft.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// newLogger builds the component logger. File output is used by commands
// that own the terminal.
func newLogger(toFile bool) (*mdwlog.Logger, error) {
	cfg := appConfig
	if cfg == nil {
		cfg = config.Default()
	}

	lc := logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
		Output:      os.Stderr,
	}
	if verbose {
		lc.Level = "debug"
	}
	if toFile {
		lc.File = cfg.LogFilePath()
	}

	logger, err := logging.NewLogger(lc)
	if err != nil {
		return nil, err
	}
	mdwlog.SetDefault(logger)
	return logger, nil
}

func newFrontEnd(logger *mdwlog.Logger) *raft.FrontEnd {
	return raft.NewFrontEnd(raft.Options{Logger: logger})
}

// irOptions maps the backend configuration to generator options
func irOptions(logger *mdwlog.Logger, fold bool) irgen.Options {
	opts := irgen.Options{
		Name:   appConfig.Backend.ModuleName,
		Fold:   fold,
		Logger: logger,
	}
	for _, ext := range appConfig.Backend.Externs {
		opts.Externs = append(opts.Externs, irgen.Extern{Name: ext.Name, Params: ext.Params})
	}
	return opts
}

// readSource reads a program file; "-" reads standard input
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
