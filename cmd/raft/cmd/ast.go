package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/raft/foundation/core/error"
	"github.com/msto63/raft/foundation/raft/ast"
)

var (
	astFormat string
	astStats  bool
)

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the syntax tree of a program",
	Long: `Print the syntax tree of a Raft program.

Formats:
  text   one S-expression per statement
  json   nested objects
  yaml   nested mappings`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVarP(&astFormat, "format", "f", "text", "output format: text, json or yaml")
	astCmd.Flags().BoolVar(&astStats, "stats", false, "print node counts instead of the tree")
}

func runAST(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	logger, err := newLogger(false)
	if err != nil {
		return err
	}

	stmts, err := newFrontEnd(logger).Compile(source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if astStats {
		return writeStats(out, stmts)
	}
	return writeTree(out, stmts, astFormat)
}

func writeTree(w io.Writer, stmts []ast.Stmt, format string) error {
	switch strings.ToLower(format) {
	case "text", "":
		_, err := io.WriteString(w, ast.PrintProgram(stmts))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ast.ProgramToMaps(stmts))
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.ProgramToMaps(stmts)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return mdwerror.Newf("unsupported format: %s", format).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("ast")
	}
}

func writeStats(w io.Writer, stmts []ast.Stmt) error {
	counts := make(map[string]int)
	total := 0
	for _, stmt := range stmts {
		ast.Inspect(stmt, func(n ast.Node) bool {
			counts[ast.Kind(n)]++
			total++
			return true
		})
	}

	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	fmt.Fprintf(w, "statements: %d\n", len(stmts))
	fmt.Fprintf(w, "nodes:      %d\n", total)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-12s %d\n", k, counts[k])
	}
	return nil
}
