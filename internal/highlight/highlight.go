// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     highlight
// Description: Syntax highlighting for Raft sources via chroma
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package highlight

import (
	"io"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"

	mdwerror "github.com/msto63/raft/foundation/core/error"
	"github.com/msto63/raft/foundation/raft/token"
)

// Defaults used when no style or formatter is named
const (
	DefaultStyle     = "monokai"
	DefaultFormatter = "terminal256"
)

// Lexer tokenizes Raft source for chroma formatters
var Lexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Raft",
		Aliases:   []string{"raft"},
		Filenames: []string{"*.raft", "*.rf"},
		MimeTypes: []string{"text/x-raft"},
	},
	rules,
)

func rules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Text},
			{Pattern: `//[^\n]*`, Type: chroma.CommentSingle},
			{Pattern: `(true|false)\b`, Type: chroma.KeywordConstant},
			{Pattern: chroma.Words(`\b`, `\b`, declarationKeywords()...), Type: chroma.KeywordDeclaration},
			{Pattern: chroma.Words(`\b`, `\b`, reservedKeywords()...), Type: chroma.KeywordReserved},
			{Pattern: `"[^"]*"?`, Type: chroma.LiteralString},
			{Pattern: `[0-9]+(\.[0-9]+)?`, Type: chroma.LiteralNumber},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*(?=\s*\()`, Type: chroma.NameFunction},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Type: chroma.Name},
			{Pattern: chroma.Words(``, ``, symbolsWhere(isOperator)...), Type: chroma.Operator},
			{Pattern: chroma.Words(``, ``, symbolsWhere(isPunctuation)...), Type: chroma.Punctuation},
			{Pattern: `.`, Type: chroma.Error},
		},
	}
}

func isPunctuation(kind token.Type) bool {
	return kind.IsOperator() && kind < token.Minus
}

func isOperator(kind token.Type) bool {
	return kind.IsOperator() && kind >= token.Minus
}

// symbolsWhere returns the source text of the operator kinds accepted by keep.
// chroma.Words orders the alternatives longest first, matching the scanner's
// maximal munch.
func symbolsWhere(keep func(token.Type) bool) []string {
	var symbols []string
	for kind := token.LeftParen; kind < token.EOF; kind++ {
		if keep(kind) {
			symbols = append(symbols, kind.Symbol())
		}
	}
	return symbols
}

func declarationKeywords() []string {
	return keywordsWhere(func(kind token.Type) bool {
		return kind == token.Var || kind == token.Const
	})
}

// reservedKeywords are the words the lexer reserves but the grammar does
// not use yet
func reservedKeywords() []string {
	return keywordsWhere(func(kind token.Type) bool {
		switch kind {
		case token.Var, token.Const, token.True, token.False:
			return false
		}
		return true
	})
}

func keywordsWhere(keep func(token.Type) bool) []string {
	var words []string
	for _, kw := range token.Keywords() {
		if kind := token.LookupIdent(kw); keep(kind) {
			words = append(words, kw)
		}
	}
	return words
}

// Highlight writes source to w rendered with the named style and formatter.
// Empty names select the defaults.
func Highlight(w io.Writer, source, style, formatter string) error {
	if style == "" {
		style = DefaultStyle
	}
	if formatter == "" {
		formatter = DefaultFormatter
	}

	s, ok := styles.Registry[style]
	if !ok {
		return mdwerror.Newf("unknown style: %s", style).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("highlight.Highlight")
	}
	f, ok := formatters.Registry[formatter]
	if !ok {
		return mdwerror.Newf("unknown formatter: %s", formatter).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("highlight.Highlight")
	}

	it, err := Lexer.Tokenise(nil, source)
	if err != nil {
		return mdwerror.Wrap(err, "tokenise failed").WithCode(mdwerror.CodeInternal)
	}
	if err := f.Format(w, s, it); err != nil {
		return mdwerror.Wrap(err, "format failed").WithCode(mdwerror.CodeInternal)
	}
	return nil
}

// Styles lists the available style names
func Styles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Formatters lists the available formatter names
func Formatters() []string {
	names := make([]string, 0, len(formatters.Registry))
	for name := range formatters.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
