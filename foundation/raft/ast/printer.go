// File: printer.go
// Title: S-Expression Printer
// Description: Renders syntax trees as fully parenthesized prefix
//              S-expressions, e.g. "2+3*4;" becomes "(+ 2 (* 3 4))".
//              Used by Node.String, the CLI tree dump and the tests.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial printer

package ast

import (
	"strconv"
	"strings"
)

// Print renders node as an S-expression. A nil node renders as "nil".
func Print(node Node) string {
	var (
		out string
		err error
	)
	switch n := node.(type) {
	case Expr:
		out, err = AcceptExpr[string](n, printer{})
	case Stmt:
		out, err = AcceptStmt[string](n, printer{})
	default:
		return "nil"
	}
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return out
}

// PrintProgram renders one statement per line
func PrintProgram(stmts []Stmt) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(Print(s))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatNumber renders a number literal the way the printer does
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type printer struct{}

func (printer) VisitNumber(e *NumberExpr) (string, error) {
	return FormatNumber(e.Value), nil
}

func (printer) VisitString(e *StringExpr) (string, error) {
	return strconv.Quote(e.Value), nil
}

func (printer) VisitBool(e *BoolExpr) (string, error) {
	return strconv.FormatBool(e.Value), nil
}

func (printer) VisitIdentifier(e *IdentifierExpr) (string, error) {
	return e.Name, nil
}

func (printer) VisitCall(e *CallExpr) (string, error) {
	parts := make([]string, 0, len(e.Args)+2)
	parts = append(parts, "call", e.Callee)
	for _, arg := range e.Args {
		parts = append(parts, Print(arg))
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}

func (printer) VisitBinary(e *BinaryExpr) (string, error) {
	return "(" + e.Op.Symbol() + " " + Print(e.Left) + " " + Print(e.Right) + ")", nil
}

func (printer) VisitUnary(e *UnaryExpr) (string, error) {
	return "(" + e.Op.Symbol() + " " + Print(e.Right) + ")", nil
}

func (printer) VisitGrouped(e *GroupedExpr) (string, error) {
	return "(group " + Print(e.Inner) + ")", nil
}

func (printer) VisitExprStmt(s *ExprStmt) (string, error) {
	return Print(s.Expr), nil
}

func (printer) VisitVarDecl(s *VarDeclStmt) (string, error) {
	keyword := "var"
	if s.Constant {
		keyword = "const"
	}
	if s.Init == nil {
		return "(" + keyword + " " + s.Name + ")", nil
	}
	return "(" + keyword + " " + s.Name + " " + Print(s.Init) + ")", nil
}
