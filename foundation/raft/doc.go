// Package raft is the front end of the Raft language.
//
// Package: raft
// Title: Raft Front End
// Description: Compile turns source text into syntax tree statements by
//              running the tokenizer and the parser. Failures are returned
//              as structured errors coded RAFT_LEXICAL or RAFT_SYNTAX.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-16
// Modified: 2025-02-16
//
// Change History:
// - 2025-02-16 v0.1.0: Initial front end
//
// Usage:
//   import "github.com/msto63/raft/foundation/raft"
//
//   stmts, err := raft.Compile("var x = 1; x + 2;")
//   if err != nil {
//     return err
//   }
//   for _, s := range stmts {
//     fmt.Println(s)
//   }
package raft
