package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/raft/pkg/core/config"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return appConfig.Encode(cmd.OutOrStdout(), configFormat)
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the locations searched for a config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if env := os.Getenv("RAFT_CONFIG"); env != "" {
			fmt.Fprintf(out, "RAFT_CONFIG=%s\n", env)
		}
		for _, p := range config.DefaultPaths() {
			mark := " "
			if _, err := os.Stat(p); err == nil {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %s\n", mark, p)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathsCmd)
	configShowCmd.Flags().StringVarP(&configFormat, "format", "f", "toml", "output format: toml or yaml")
}
