// Package parser implements the Raft tokenizer and parser.
//
// Package: parser
// Title: Raft Tokenizer and Recursive Descent Parser
// Description: Converts Raft source text into a token sequence and the token
//              sequence into a list of statement nodes. The tokenizer reports
//              a lexical fault as part of its result; the parser stops at the
//              first syntax error and returns it as *ParseError.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial tokenizer and parser
//
// Grammar, lowest to highest precedence:
//
//   Program       := Statement* EOF
//   Statement     := ("var" | "const") IDENTIFIER ("=" Expression)? ";"
//                  | Expression ";"
//   Expression    := Equality
//   Equality      := Comparison (("==" | "!=") Comparison)*
//   Comparison    := Term (("<" | ">" | "<=" | ">=") Term)*
//   Term          := Factor (("+" | "-") Factor)*
//   Factor        := Unary (("*" | "/") Unary)*
//   Unary         := ("!" | "-" | "--") Unary | Call
//   Call          := Primary ("(" Arguments? ")")?
//   Arguments     := Expression ("," Expression)*
//   Primary       := NUMBER | STRING | IDENTIFIER | "true" | "false"
//                  | "(" Expression ")"
//
// All binary layers are left-associative. A "--" token is read as two
// prefix minus operators. Only identifiers can be called.
//
// Usage:
//
//   res := parser.Tokenize(src)
//   if res.Fault != nil {
//     return res.Fault
//   }
//   stmts, err := parser.Parse(res.Tokens)
package parser
