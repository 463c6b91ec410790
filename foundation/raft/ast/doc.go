// Package ast defines the Raft syntax tree.
//
// Package: ast
// Title: Raft Syntax Tree
// Description: Closed families of expression and statement nodes built by
//              the parser, the generic visitation contract used by code
//              generators, and built-in consumers: an S-expression printer,
//              a generic map conversion for JSON/YAML dumps and a pre-order
//              walk.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial node set and visitation contract
//
// Expr and Stmt carry unexported marker methods, so the set of node types is
// fixed to the ones declared here. AcceptExpr and AcceptStmt dispatch with an
// exhaustive type switch:
//
//   out, err := ast.AcceptExpr[string](expr, myVisitor)
//
// Nodes are created bottom-up by the parser and never mutated afterwards.
// Every child belongs to exactly one parent.
package ast
