// File: visitor.go
// Title: Raft Syntax Tree Visitation
// Description: Generic visitor interfaces for expressions and statements and
//              the exhaustive dispatch functions that drive them.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial visitation contract

package ast

import "fmt"

// ExprVisitor produces a T for every expression variant
type ExprVisitor[T any] interface {
	VisitNumber(expr *NumberExpr) (T, error)
	VisitString(expr *StringExpr) (T, error)
	VisitBool(expr *BoolExpr) (T, error)
	VisitIdentifier(expr *IdentifierExpr) (T, error)
	VisitCall(expr *CallExpr) (T, error)
	VisitBinary(expr *BinaryExpr) (T, error)
	VisitUnary(expr *UnaryExpr) (T, error)
	VisitGrouped(expr *GroupedExpr) (T, error)
}

// StmtVisitor produces a T for every statement variant
type StmtVisitor[T any] interface {
	VisitExprStmt(stmt *ExprStmt) (T, error)
	VisitVarDecl(stmt *VarDeclStmt) (T, error)
}

// AcceptExpr dispatches expr to the matching method of v
func AcceptExpr[T any](expr Expr, v ExprVisitor[T]) (T, error) {
	switch e := expr.(type) {
	case *NumberExpr:
		return v.VisitNumber(e)
	case *StringExpr:
		return v.VisitString(e)
	case *BoolExpr:
		return v.VisitBool(e)
	case *IdentifierExpr:
		return v.VisitIdentifier(e)
	case *CallExpr:
		return v.VisitCall(e)
	case *BinaryExpr:
		return v.VisitBinary(e)
	case *UnaryExpr:
		return v.VisitUnary(e)
	case *GroupedExpr:
		return v.VisitGrouped(e)
	default:
		var zero T
		return zero, fmt.Errorf("ast: unexpected expression %T", expr)
	}
}

// AcceptStmt dispatches stmt to the matching method of v
func AcceptStmt[T any](stmt Stmt, v StmtVisitor[T]) (T, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		return v.VisitExprStmt(s)
	case *VarDeclStmt:
		return v.VisitVarDecl(s)
	default:
		var zero T
		return zero, fmt.Errorf("ast: unexpected statement %T", stmt)
	}
}
