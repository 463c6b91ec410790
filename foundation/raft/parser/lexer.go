// File: lexer.go
// Title: Raft Lexical Analyzer (Tokenizer)
// Description: Single left-to-right pass over the source text producing
//              tokens with line numbers. A lexical fault halts scanning and
//              is returned with the tokens produced so far; the sequence
//              always ends with exactly one EOF token.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/msto63/raft/foundation/raft/token"
)

// TokenType is the kind of a token
type TokenType = token.Type

// Token is a lexical token
type Token = token.Token

// LexErrorKind classifies a lexical fault
type LexErrorKind int

const (
	// InvalidToken is a character that cannot start any token
	InvalidToken LexErrorKind = iota + 1

	// UnendingString is a string literal without closing quote
	UnendingString
)

// String returns the name of the fault kind
func (k LexErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "InvalidToken"
	case UnendingString:
		return "UnendingString"
	default:
		return "Unknown"
	}
}

// LexError describes the lexical fault that halted scanning
type LexError struct {
	Kind LexErrorKind
	Line int
	Char string // offending character; empty for UnendingString
}

func (e *LexError) Error() string {
	switch e.Kind {
	case InvalidToken:
		return fmt.Sprintf("lexical error at line %d: invalid token %q", e.Line, e.Char)
	case UnendingString:
		return fmt.Sprintf("lexical error at line %d: unterminated string", e.Line)
	default:
		return fmt.Sprintf("lexical error at line %d", e.Line)
	}
}

// Result is the outcome of Tokenize. Fault is nil on success.
type Result struct {
	Tokens []Token
	Fault  *LexError
}

// Tokenize scans the full source text. It never fails with a Go error:
// a lexical fault is reported in the result together with every token
// produced before it and a trailing EOF.
func Tokenize(source string) Result {
	l := NewLexer(source)
	tokens := make([]Token, 0, len(source)/2+1)

	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return Result{Tokens: tokens, Fault: l.Fault()}
}

// Lexer performs lexical analysis of Raft source text
type Lexer struct {
	input string
	pos   int // index of the next unread byte
	line  int // current line number (1-based)
	fault *LexError
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Fault returns the lexical fault that halted scanning, if any
func (l *Lexer) Fault() *LexError {
	return l.fault
}

// Line returns the current line number
func (l *Lexer) Line() int {
	return l.line
}

// NextToken returns the next token. After the end of input or a fault it
// keeps returning EOF.
func (l *Lexer) NextToken() Token {
	if l.fault != nil {
		return l.eof()
	}

	l.skipWhitespaceAndComments()
	if l.atEnd() {
		return l.eof()
	}

	line := l.line
	ch := l.advance()

	switch ch {
	case '(':
		return l.emit(token.LeftParen, line)
	case ')':
		return l.emit(token.RightParen, line)
	case '{':
		return l.emit(token.LeftBrace, line)
	case '}':
		return l.emit(token.RightBrace, line)
	case ',':
		return l.emit(token.Comma, line)
	case '.':
		return l.emit(token.Dot, line)
	case ';':
		return l.emit(token.Semicolon, line)
	case '+':
		switch {
		case l.match('='):
			return l.emit(token.PlusEqual, line)
		case l.match('+'):
			return l.emit(token.PlusPlus, line)
		}
		return l.emit(token.Plus, line)
	case '-':
		switch {
		case l.match('='):
			return l.emit(token.MinusEqual, line)
		case l.match('-'):
			return l.emit(token.MinusMinus, line)
		}
		return l.emit(token.Minus, line)
	case '*':
		if l.match('=') {
			return l.emit(token.StarEqual, line)
		}
		return l.emit(token.Star, line)
	case '/':
		// Comments are consumed by skipWhitespaceAndComments
		return l.emit(token.Slash, line)
	case '!':
		return l.makeEither('=', token.BangEqual, token.Bang, line)
	case '=':
		return l.makeEither('=', token.EqualEqual, token.Equal, line)
	case '<':
		return l.makeEither('=', token.LessEqual, token.Less, line)
	case '>':
		return l.makeEither('=', token.GreaterEqual, token.Greater, line)
	case '"':
		return l.readString(line)
	}

	switch {
	case isDigit(ch):
		return l.readNumber(line)
	case isLetter(ch):
		return l.readIdentifier(line)
	}

	// Report the whole character for multi-byte input
	r, _ := utf8.DecodeRuneInString(l.input[l.pos-1:])
	l.fault = &LexError{Kind: InvalidToken, Line: line, Char: string(r)}
	return l.eof()
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
	}
	return ch
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// match consumes the next byte if it equals expected
func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.input[l.pos] != expected {
		return false
	}
	l.pos++
	return true
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peekNext() != '/' {
				return
			}
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) emit(kind TokenType, line int) Token {
	return Token{Kind: kind, Lexeme: kind.Symbol(), Line: line}
}

func (l *Lexer) makeEither(next byte, long, short TokenType, line int) Token {
	if l.match(next) {
		return l.emit(long, line)
	}
	return l.emit(short, line)
}

func (l *Lexer) eof() Token {
	return Token{Kind: token.EOF, Line: l.line}
}

// readString reads up to the closing quote. Contents are taken verbatim;
// newlines inside the literal advance the line counter.
func (l *Lexer) readString(line int) Token {
	start := l.pos
	for !l.atEnd() && l.peek() != '"' {
		l.advance()
	}

	value := l.input[start:l.pos]
	if l.atEnd() {
		l.fault = &LexError{Kind: UnendingString, Line: line}
		return Token{Kind: token.String, Lexeme: value, Line: line}
	}

	l.advance() // closing quote
	return Token{Kind: token.String, Lexeme: value, Line: line}
}

// readNumber reads digits with at most one fractional part. A dot that is
// not followed by a digit is left for the next token.
func (l *Lexer) readNumber(line int) Token {
	start := l.pos - 1
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	return Token{Kind: token.Number, Lexeme: l.input[start:l.pos], Line: line}
}

func (l *Lexer) readIdentifier(line int) Token {
	start := l.pos - 1
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	word := l.input[start:l.pos]
	return Token{Kind: token.LookupIdent(word), Lexeme: word, Line: line}
}

func isDigit(ch byte) bool {
	return token.IsDigit(ch)
}

func isLetter(ch byte) bool {
	return token.IsLetter(ch)
}
