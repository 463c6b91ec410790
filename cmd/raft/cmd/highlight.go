package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/raft/internal/highlight"
)

var (
	highlightStyle     string
	highlightFormatter string
	highlightList      bool
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [FILE]",
	Short: "Print a program with syntax highlighting",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)
	highlightCmd.Flags().StringVarP(&highlightStyle, "style", "s", "", "chroma style (default from config)")
	highlightCmd.Flags().StringVar(&highlightFormatter, "formatter", "", "chroma formatter (default from config)")
	highlightCmd.Flags().BoolVar(&highlightList, "list", false, "list available styles and formatters")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if highlightList {
		fmt.Fprintf(out, "styles:     %s\n", strings.Join(highlight.Styles(), " "))
		fmt.Fprintf(out, "formatters: %s\n", strings.Join(highlight.Formatters(), " "))
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("highlight requires a FILE argument")
	}

	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	style := highlightStyle
	if style == "" {
		style = appConfig.Highlight.Style
	}
	formatter := highlightFormatter
	if formatter == "" {
		formatter = appConfig.Highlight.Formatter
	}
	return highlight.Highlight(out, source, style, formatter)
}
