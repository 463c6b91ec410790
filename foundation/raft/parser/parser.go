// File: parser.go
// Title: Raft Recursive Descent Parser
// Description: Converts a token sequence into statement nodes using
//              recursive descent with one function per precedence layer.
//              The first syntax error aborts the parse; no partial
//              statement list is returned.
// Author: msto63
// Version: v0.1.1
// Created: 2025-02-14
// Modified: 2026-10-16
//
// Change History:
// - 2025-02-14 v0.1.0: Initial parser implementation
// - 2026-10-16 v0.1.1: Cursor moved into per-call state

package parser

import (
	"fmt"
	"strconv"

	mdwlog "github.com/msto63/raft/foundation/core/log"
	"github.com/msto63/raft/foundation/raft/ast"
	"github.com/msto63/raft/foundation/raft/token"
)

// Parser implements recursive descent parsing for Raft. A Parser holds
// configuration only; each Parse call owns its cursor, so one Parser may be
// used from several goroutines.
type Parser struct {
	logger  *mdwlog.Logger
	options Options
}

// state is the cursor of a single Parse call
type state struct {
	tokens  []Token
	current int
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger

	// MaxTokens limits the length of a program; 0 means unlimited
	MaxTokens int
}

// ParseError represents a syntax error at a specific token
type ParseError struct {
	Message string
	Line    int
	Token   Token
}

func (pe *ParseError) Error() string {
	near := "end of input"
	if pe.Token.Kind != token.EOF {
		near = "'" + pe.Token.Lexeme + "'"
	}
	return fmt.Sprintf("parse error at line %d: %s (near %s)", pe.Line, pe.Message, near)
}

// New creates a new parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "raft-parser"),
		options: opts,
	}
}

// Parse parses tokens with a default parser
func Parse(tokens []Token) ([]ast.Stmt, error) {
	return New(Options{}).Parse(tokens)
}

// Parse converts tokens into statements. The returned error is always a
// *ParseError. A missing trailing EOF token is tolerated.
func (p *Parser) Parse(tokens []Token) ([]ast.Stmt, error) {
	s := &state{tokens: tokens}

	if p.options.MaxTokens > 0 && len(tokens) > p.options.MaxTokens {
		return nil, &ParseError{
			Message: fmt.Sprintf("program exceeds maximum length: %d > %d tokens", len(tokens), p.options.MaxTokens),
			Line:    1,
			Token:   s.peek(),
		}
	}

	p.logger.Debug("starting parse", mdwlog.Fields{"tokens": len(tokens)})

	var stmts []ast.Stmt
	for !s.isAtEnd() {
		stmt, err := s.parseStatement()
		if err != nil {
			p.logger.Debug("parse failed", mdwlog.Fields{
				"error":      err.Error(),
				"statements": len(stmts),
			})
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	p.logger.Debug("parse completed", mdwlog.Fields{"statements": len(stmts)})
	return stmts, nil
}

// parseStatement parses a declaration or an expression statement
func (p *state) parseStatement() (ast.Stmt, error) {
	if p.match(token.Var, token.Const) {
		return p.parseVarDecl(p.previous())
	}
	return p.parseExprStatement()
}

// parseVarDecl parses the remainder of "var NAME (= EXPR)? ;"
func (p *state) parseVarDecl(keyword Token) (ast.Stmt, error) {
	name, err := p.expect(token.Identifier, "expected variable name after '"+keyword.Lexeme+"'")
	if err != nil {
		return nil, err
	}

	decl := &ast.VarDeclStmt{
		Name:     name.Lexeme,
		Constant: keyword.Kind == token.Const,
		Pos:      ast.Position{Line: keyword.Line},
	}

	if p.match(token.Equal) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = value
	}

	if _, err := p.expect(token.Semicolon, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *state) parseExprStatement() (ast.Stmt, error) {
	line := p.peek().Line
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr, Pos: ast.Position{Line: line}}, nil
}

func (p *state) parseExpression() (ast.Expr, error) {
	return p.parseEquality()
}

func (p *state) parseEquality() (ast.Expr, error) {
	return p.parseBinary(p.parseComparison, token.EqualEqual, token.BangEqual)
}

func (p *state) parseComparison() (ast.Expr, error) {
	return p.parseBinary(p.parseTerm, token.Less, token.Greater, token.LessEqual, token.GreaterEqual)
}

func (p *state) parseTerm() (ast.Expr, error) {
	return p.parseBinary(p.parseFactor, token.Plus, token.Minus)
}

func (p *state) parseFactor() (ast.Expr, error) {
	return p.parseBinary(p.parseUnary, token.Star, token.Slash)
}

// parseBinary parses one left-associative layer: next (op next)*
func (p *state) parseBinary(next func() (ast.Expr, error), ops ...TokenType) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Left:  left,
			Op:    op.Kind,
			Right: right,
			Pos:   left.Position(),
		}
	}

	return left, nil
}

// parseUnary parses prefix operators. A "--" token counts as two minus signs.
func (p *state) parseUnary() (ast.Expr, error) {
	if p.match(token.Bang, token.Minus, token.MinusMinus) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		pos := ast.Position{Line: op.Line}
		if op.Kind == token.MinusMinus {
			inner := &ast.UnaryExpr{Op: token.Minus, Right: right, Pos: pos}
			return &ast.UnaryExpr{Op: token.Minus, Right: inner, Pos: pos}, nil
		}
		return &ast.UnaryExpr{Op: op.Kind, Right: right, Pos: pos}, nil
	}

	return p.parseCall()
}

// parseCall parses an optional argument list after an identifier
func (p *state) parseCall() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	ident, ok := expr.(*ast.IdentifierExpr)
	if !ok || !p.match(token.LeftParen) {
		return expr, nil
	}

	call := &ast.CallExpr{Callee: ident.Name, Args: []ast.Expr{}, Pos: ident.Pos}
	if !p.check(token.RightParen) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}

	if _, err := p.expect(token.RightParen, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *state) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	pos := ast.Position{Line: tok.Line}

	switch tok.Kind {
	case token.Number:
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number literal")
		}
		return &ast.NumberExpr{Value: value, Pos: pos}, nil

	case token.String:
		p.advance()
		return &ast.StringExpr{Value: tok.Lexeme, Pos: pos}, nil

	case token.True, token.False:
		p.advance()
		return &ast.BoolExpr{Value: tok.Kind == token.True, Pos: pos}, nil

	case token.Identifier:
		p.advance()
		return &ast.IdentifierExpr{Name: tok.Lexeme, Pos: pos}, nil

	case token.LeftParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.GroupedExpr{Inner: inner, Pos: pos}, nil
	}

	return nil, p.errorAt(tok, "expected expression")
}

// Token stream helpers

func (p *state) peek() Token {
	if p.current >= len(p.tokens) {
		line := 1
		if n := len(p.tokens); n > 0 {
			line = p.tokens[n-1].Line
		}
		return Token{Kind: token.EOF, Line: line}
	}
	return p.tokens[p.current]
}

func (p *state) previous() Token {
	return p.tokens[p.current-1]
}

func (p *state) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *state) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *state) check(kind TokenType) bool {
	return p.peek().Kind == kind
}

// match consumes the current token if it has one of the given kinds
func (p *state) match(kinds ...TokenType) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or fails with message
func (p *state) expect(kind TokenType, message string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), message)
}

func (p *state) errorAt(tok Token, message string) *ParseError {
	return &ParseError{Message: message, Line: tok.Line, Token: tok}
}
