// File: token.go
// Title: Raft Token Definitions
// Description: Defines the closed set of token kinds produced by the Raft
//              tokenizer, the Token value and the immutable keyword table.
//              Shared by the parser and the syntax tree, whose operator
//              fields hold a token kind.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial token set

package token

import "fmt"

// Type represents the kind of a lexical token
type Type int

const (
	// Punctuation
	LeftParen  Type = iota // (
	RightParen             // )
	LeftBrace              // {
	RightBrace             // }
	Comma                  // ,
	Dot                    // .
	Semicolon              // ;

	// Operators
	Minus        // -
	MinusEqual   // -=
	MinusMinus   // --
	Plus         // +
	PlusEqual    // +=
	PlusPlus     // ++
	Star         // *
	StarEqual    // *=
	Slash        // /
	Bang         // !
	BangEqual    // !=
	Equal        // =
	EqualEqual   // ==
	Greater      // >
	GreaterEqual // >=
	Less         // <
	LessEqual    // <=

	// Literals
	Identifier
	String
	Number

	// Keywords
	Var
	Const
	If
	Else
	While
	For
	Loop
	Fn
	Break
	Continue
	True
	False

	EOF
)

var typeNames = [...]string{
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftBrace:    "LEFT_BRACE",
	RightBrace:   "RIGHT_BRACE",
	Comma:        "COMMA",
	Dot:          "DOT",
	Semicolon:    "SEMICOLON",
	Minus:        "MINUS",
	MinusEqual:   "MINUS_EQUAL",
	MinusMinus:   "MINUS_MINUS",
	Plus:         "PLUS",
	PlusEqual:    "PLUS_EQUAL",
	PlusPlus:     "PLUS_PLUS",
	Star:         "STAR",
	StarEqual:    "STAR_EQUAL",
	Slash:        "SLASH",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	Var:          "VAR",
	Const:        "CONST",
	If:           "IF",
	Else:         "ELSE",
	While:        "WHILE",
	For:          "FOR",
	Loop:         "LOOP",
	Fn:           "FN",
	Break:        "BREAK",
	Continue:     "CONTINUE",
	True:         "TRUE",
	False:        "FALSE",
	EOF:          "EOF",
}

var operatorText = map[Type]string{
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Semicolon:    ";",
	Minus:        "-",
	MinusEqual:   "-=",
	MinusMinus:   "--",
	Plus:         "+",
	PlusEqual:    "+=",
	PlusPlus:     "++",
	Star:         "*",
	StarEqual:    "*=",
	Slash:        "/",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
}

// String returns the upper-case name of the token kind
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// Symbol returns the source text of a punctuation or operator kind, and the
// kind name for every other kind.
func (t Type) Symbol() string {
	if s, ok := operatorText[t]; ok {
		return s
	}
	return t.String()
}

// IsKeyword reports whether the kind is a reserved word
func (t Type) IsKeyword() bool {
	return t >= Var && t <= False
}

// IsOperator reports whether the kind is punctuation or an operator
func (t Type) IsOperator() bool {
	return t >= LeftParen && t <= LessEqual
}

// Token is an immutable lexical token
type Token struct {
	Kind   Type   // Token kind
	Lexeme string // Decoded text; empty for EOF
	Line   int    // 1-based line where the token starts
}

// String returns a compact representation such as NUMBER(3) or EOF
func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
}

// keywordTable lists the reserved words in declaration order
var keywordTable = [...]struct {
	word string
	kind Type
}{
	{"var", Var},
	{"const", Const},
	{"if", If},
	{"else", Else},
	{"while", While},
	{"for", For},
	{"loop", Loop},
	{"fn", Fn},
	{"break", Break},
	{"continue", Continue},
	{"true", True},
	{"false", False},
}

var keywords = make(map[string]Type, len(keywordTable))

func init() {
	for _, kw := range keywordTable {
		keywords[kw.word] = kw.kind
	}
}

// LookupKeyword returns the keyword kind for word, if word is reserved
func LookupKeyword(word string) (Type, bool) {
	kind, ok := keywords[word]
	return kind, ok
}

// LookupIdent returns the keyword kind for word or Identifier
func LookupIdent(word string) Type {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return Identifier
}

// IsIdentifier reports whether word scans as a single IDENTIFIER token:
// an ASCII letter or underscore followed by letters, digits or underscores,
// and not a reserved word.
func IsIdentifier(word string) bool {
	if word == "" || !IsLetter(word[0]) {
		return false
	}
	for i := 1; i < len(word); i++ {
		if !IsLetter(word[i]) && !IsDigit(word[i]) {
			return false
		}
	}
	return LookupIdent(word) == Identifier
}

// IsLetter accepts ASCII letters and underscore only
func IsLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// IsDigit accepts ASCII decimal digits
func IsDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Keywords returns a copy of the reserved words in declaration order
func Keywords() []string {
	words := make([]string, len(keywordTable))
	for i, kw := range keywordTable {
		words[i] = kw.word
	}
	return words
}
