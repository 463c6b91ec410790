// File: raft.go
// Title: Raft Front End
// Description: Runs tokenizer and parser in sequence and classifies their
//              failures as structured errors. This is the entry point used
//              by the CLI, the watch loop and the interactive prompt.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-16
// Modified: 2025-02-16
//
// Change History:
// - 2025-02-16 v0.1.0: Initial front end

package raft

import (
	mdwerror "github.com/msto63/raft/foundation/core/error"
	mdwlog "github.com/msto63/raft/foundation/core/log"
	"github.com/msto63/raft/foundation/raft/ast"
	"github.com/msto63/raft/foundation/raft/parser"
)

// Options configures a FrontEnd
type Options struct {
	Logger *mdwlog.Logger

	// MaxTokens limits the length of a program; 0 means unlimited
	MaxTokens int
}

// FrontEnd turns source text into statements
type FrontEnd struct {
	logger *mdwlog.Logger
	parser *parser.Parser
}

// NewFrontEnd creates a front end with the given options
func NewFrontEnd(opts Options) *FrontEnd {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	return &FrontEnd{
		logger: opts.Logger.WithField("component", "raft-frontend"),
		parser: parser.New(parser.Options{Logger: opts.Logger, MaxTokens: opts.MaxTokens}),
	}
}

// Compile tokenizes and parses source. Lexical faults are returned with code
// RAFT_LEXICAL, syntax errors with RAFT_SYNTAX; the underlying *LexError or
// *ParseError stays reachable through errors.As.
func (f *FrontEnd) Compile(source string) ([]ast.Stmt, error) {
	timer := f.logger.StartTimer("compile").WithField("bytes", len(source))

	res := parser.Tokenize(source)
	timer.Checkpoint("tokenize")
	if res.Fault != nil {
		err := mdwerror.Wrap(res.Fault, "compile").
			WithCode(mdwerror.CodeLexical).
			WithOperation("raft.Compile").
			WithDetail("line", res.Fault.Line).
			WithDetail("fault", res.Fault.Kind.String())
		timer.StopWithError(err)
		return nil, err
	}

	stmts, perr := f.parser.Parse(res.Tokens)
	timer.Checkpoint("parse")
	if perr != nil {
		err := mdwerror.Wrap(perr, "compile").
			WithCode(mdwerror.CodeSyntax).
			WithOperation("raft.Compile")
		if pe, ok := perr.(*parser.ParseError); ok {
			err.WithDetail("line", pe.Line)
		}
		timer.StopWithError(err)
		return nil, err
	}

	timer.WithField("statements", len(stmts)).Stop()
	return stmts, nil
}

// Tokens tokenizes source and returns the lexical fault as a structured error
func (f *FrontEnd) Tokens(source string) ([]parser.Token, error) {
	res := parser.Tokenize(source)
	if res.Fault != nil {
		return res.Tokens, mdwerror.Wrap(res.Fault, "tokenize").
			WithCode(mdwerror.CodeLexical).
			WithOperation("raft.Tokens").
			WithDetail("line", res.Fault.Line)
	}
	return res.Tokens, nil
}

// Compile runs a default front end over source
func Compile(source string) ([]ast.Stmt, error) {
	return NewFrontEnd(Options{}).Compile(source)
}
