// File: convert.go
// Title: Syntax Tree Conversion and Traversal
// Description: Converts syntax trees to generic maps for JSON and YAML
//              dumps, and walks trees in pre-order.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial conversion and walk

package ast

// ToMap converts node into nested maps and slices with a "type" key per node.
// The result only contains strings, numbers, bools, maps and slices, so it
// encodes cleanly with encoding/json and yaml.v3.
func ToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}
	m := map[string]interface{}{
		"type": Kind(node),
		"line": node.Position().Line,
	}

	switch n := node.(type) {
	case *NumberExpr:
		m["value"] = n.Value
	case *StringExpr:
		m["value"] = n.Value
	case *BoolExpr:
		m["value"] = n.Value
	case *IdentifierExpr:
		m["name"] = n.Name
	case *CallExpr:
		args := make([]interface{}, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, ToMap(a))
		}
		m["callee"] = n.Callee
		m["args"] = args
	case *BinaryExpr:
		m["op"] = n.Op.Symbol()
		m["left"] = ToMap(n.Left)
		m["right"] = ToMap(n.Right)
	case *UnaryExpr:
		m["op"] = n.Op.Symbol()
		m["right"] = ToMap(n.Right)
	case *GroupedExpr:
		m["inner"] = ToMap(n.Inner)
	case *ExprStmt:
		m["expr"] = ToMap(n.Expr)
	case *VarDeclStmt:
		m["name"] = n.Name
		m["constant"] = n.Constant
		if n.Init != nil {
			m["init"] = ToMap(n.Init)
		}
	}
	return m
}

// ProgramToMaps converts a statement list with ToMap
func ProgramToMaps(stmts []Stmt) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, ToMap(s))
	}
	return out
}

// Kind returns the short type name of a node, e.g. "binary"
func Kind(node Node) string {
	switch node.(type) {
	case *NumberExpr:
		return "number"
	case *StringExpr:
		return "string"
	case *BoolExpr:
		return "bool"
	case *IdentifierExpr:
		return "identifier"
	case *CallExpr:
		return "call"
	case *BinaryExpr:
		return "binary"
	case *UnaryExpr:
		return "unary"
	case *GroupedExpr:
		return "grouped"
	case *ExprStmt:
		return "expr_stmt"
	case *VarDeclStmt:
		return "var_decl"
	default:
		return ""
	}
}

// Inspect walks the tree rooted at node in pre-order, calling fn for every
// node. Children of a node are skipped when fn returns false.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *CallExpr:
		for _, a := range n.Args {
			Inspect(a, fn)
		}
	case *BinaryExpr:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *UnaryExpr:
		Inspect(n.Right, fn)
	case *GroupedExpr:
		Inspect(n.Inner, fn)
	case *ExprStmt:
		Inspect(n.Expr, fn)
	case *VarDeclStmt:
		if n.Init != nil {
			Inspect(n.Init, fn)
		}
	}
}
