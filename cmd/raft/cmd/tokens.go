package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a program",
	Long: `Print one token per line with its source line.

On a lexical fault the tokens produced before it are printed and the
command fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	logger, err := newLogger(false)
	if err != nil {
		return err
	}

	tokens, lexErr := newFrontEnd(logger).Tokens(source)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-6s %-14s %s\n", "LINE", "KIND", "LEXEME")
	for _, tok := range tokens {
		fmt.Fprintf(w, "%-6d %-14s %s\n", tok.Line, tok.Kind, tok.Lexeme)
	}
	return lexErr
}
