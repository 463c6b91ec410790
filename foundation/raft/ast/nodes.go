// File: nodes.go
// Title: Raft Syntax Tree Nodes
// Description: Defines the expression and statement node types. Each node
//              records the line of the token that started it.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial node definitions

package ast

import (
	"github.com/msto63/raft/foundation/raft/token"
)

// Node represents the base interface for all syntax tree nodes
type Node interface {
	// String returns the S-expression rendering of the node
	String() string

	// Position returns the source position of the node
	Position() Position
}

// Position represents a position in the source text
type Position struct {
	Line int // Line number (1-based)
}

// Expr is the closed family of expression nodes
type Expr interface {
	Node
	exprNode()
}

// Stmt is the closed family of statement nodes
type Stmt interface {
	Node
	stmtNode()
}

// NumberExpr is a numeric literal
type NumberExpr struct {
	Value float64
	Pos   Position
}

// StringExpr is a string literal with its quotes removed
type StringExpr struct {
	Value string
	Pos   Position
}

// BoolExpr is the literal true or false
type BoolExpr struct {
	Value bool
	Pos   Position
}

// IdentifierExpr is a reference to a named value
type IdentifierExpr struct {
	Name string
	Pos  Position
}

// CallExpr is a call of a named function. Only identifiers can be called.
type CallExpr struct {
	Callee string
	Args   []Expr // empty for f()
	Pos    Position
}

// BinaryExpr is a binary operation. Op is one of
// + - * / == != < <= > >=.
type BinaryExpr struct {
	Left  Expr
	Op    token.Type
	Right Expr
	Pos   Position
}

// UnaryExpr is a prefix operation; Op is token.Minus or token.Bang
type UnaryExpr struct {
	Op    token.Type
	Right Expr
	Pos   Position
}

// GroupedExpr is a parenthesized expression
type GroupedExpr struct {
	Inner Expr
	Pos   Position
}

// ExprStmt is an expression followed by a semicolon
type ExprStmt struct {
	Expr Expr
	Pos  Position
}

// VarDeclStmt declares a variable or, when Constant is set, a constant.
// Init is nil for declarations without an initializer.
type VarDeclStmt struct {
	Name     string
	Constant bool
	Init     Expr
	Pos      Position
}

func (*NumberExpr) exprNode()     {}
func (*StringExpr) exprNode()     {}
func (*BoolExpr) exprNode()       {}
func (*IdentifierExpr) exprNode() {}
func (*CallExpr) exprNode()       {}
func (*BinaryExpr) exprNode()     {}
func (*UnaryExpr) exprNode()      {}
func (*GroupedExpr) exprNode()    {}

func (*ExprStmt) stmtNode()    {}
func (*VarDeclStmt) stmtNode() {}

// Position implementations

func (n *NumberExpr) Position() Position     { return n.Pos }
func (n *StringExpr) Position() Position     { return n.Pos }
func (n *BoolExpr) Position() Position       { return n.Pos }
func (n *IdentifierExpr) Position() Position { return n.Pos }
func (n *CallExpr) Position() Position       { return n.Pos }
func (n *BinaryExpr) Position() Position     { return n.Pos }
func (n *UnaryExpr) Position() Position      { return n.Pos }
func (n *GroupedExpr) Position() Position    { return n.Pos }
func (n *ExprStmt) Position() Position       { return n.Pos }
func (n *VarDeclStmt) Position() Position    { return n.Pos }

// String implementations

func (n *NumberExpr) String() string     { return Print(n) }
func (n *StringExpr) String() string     { return Print(n) }
func (n *BoolExpr) String() string       { return Print(n) }
func (n *IdentifierExpr) String() string { return Print(n) }
func (n *CallExpr) String() string       { return Print(n) }
func (n *BinaryExpr) String() string     { return Print(n) }
func (n *UnaryExpr) String() string      { return Print(n) }
func (n *GroupedExpr) String() string    { return Print(n) }
func (n *ExprStmt) String() string       { return Print(n) }
func (n *VarDeclStmt) String() string    { return Print(n) }
