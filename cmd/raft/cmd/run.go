package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/raft/internal/irgen"
)

var runFold bool

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Compile a program and print its IR",
	Long: `Compile a Raft program and print the generated module.

FILE may be "-" to read the program from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runFold, "fold", false, "evaluate constant operations at generation time")
}

func runRun(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	logger, err := newLogger(false)
	if err != nil {
		return err
	}

	ir, err := generate(source, irOptions(logger, runFold))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), ir)
	return nil
}

// generate compiles source into a fresh module and renders it
func generate(source string, opts irgen.Options) (string, error) {
	stmts, err := newFrontEnd(opts.Logger).Compile(source)
	if err != nil {
		return "", err
	}
	module := irgen.New(opts)
	if _, err := module.Generate(stmts); err != nil {
		return "", err
	}
	return module.String(), nil
}
