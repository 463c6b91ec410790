package irgen

import (
	"strings"

	"github.com/msto63/raft/foundation/raft/ast"
	"github.com/msto63/raft/foundation/raft/token"
)

var (
	_ ast.ExprVisitor[Value] = (*emitter)(nil)
	_ ast.StmtVisitor[Value] = (*emitter)(nil)
)

type arith struct {
	inst string
	name string
	eval func(a, b float64) float64
}

var arithOps = map[token.Type]arith{
	token.Plus:  {"fadd", "addtmp", func(a, b float64) float64 { return a + b }},
	token.Minus: {"fsub", "subtmp", func(a, b float64) float64 { return a - b }},
	token.Star:  {"fmul", "multmp", func(a, b float64) float64 { return a * b }},
	token.Slash: {"fdiv", "divtmp", func(a, b float64) float64 { return a / b }},
}

type compare struct {
	pred string
	eval func(a, b float64) bool
}

var compareOps = map[token.Type]compare{
	token.Less:         {"olt", func(a, b float64) bool { return a < b }},
	token.Greater:      {"ogt", func(a, b float64) bool { return a > b }},
	token.LessEqual:    {"ole", func(a, b float64) bool { return a <= b }},
	token.GreaterEqual: {"oge", func(a, b float64) bool { return a >= b }},
	token.EqualEqual:   {"oeq", func(a, b float64) bool { return a == b }},
	token.BangEqual:    {"one", func(a, b float64) bool { return a != b }},
}

// emitter lowers syntax tree nodes into its module
type emitter struct {
	m *Module
}

func (e *emitter) expr(x ast.Expr) (Value, error) {
	return ast.AcceptExpr[Value](x, e)
}

func (e *emitter) VisitNumber(expr *ast.NumberExpr) (Value, error) {
	return constDouble(expr.Value), nil
}

func (e *emitter) VisitString(expr *ast.StringExpr) (Value, error) {
	return Value{Type: Ptr, Ref: e.m.intern(expr.Value)}, nil
}

func (e *emitter) VisitBool(expr *ast.BoolExpr) (Value, error) {
	return constBool(expr.Value), nil
}

func (e *emitter) VisitIdentifier(expr *ast.IdentifierExpr) (Value, error) {
	b, ok := e.m.symbols[expr.Name]
	if !ok {
		return Value{}, codegenErr(expr.Pos.Line, MsgUnknownVariable, expr.Name)
	}
	return b.value, nil
}

func (e *emitter) VisitCall(expr *ast.CallExpr) (Value, error) {
	ext, ok := e.m.externs[expr.Callee]
	if !ok {
		return Value{}, codegenErr(expr.Pos.Line, MsgUnknownFunction, expr.Callee)
	}
	if ext.Params != len(expr.Args) {
		return Value{}, codegenErr(expr.Pos.Line, MsgArgumentCount, expr.Callee)
	}

	args := make([]string, 0, len(expr.Args))
	for _, arg := range expr.Args {
		v, err := e.expr(arg)
		if err != nil {
			return Value{}, err
		}
		if v.Type != Double {
			return Value{}, codegenErr(arg.Position().Line, MsgNonNumericArg, expr.Callee)
		}
		args = append(args, v.String())
	}

	e.m.declare(ext.Name)
	name := e.m.tmp("calltmp")
	e.m.emit("%s = call double @%s(%s)", name, ext.Name, strings.Join(args, ", "))
	return Value{Type: Double, Ref: name}, nil
}

func (e *emitter) VisitBinary(expr *ast.BinaryExpr) (Value, error) {
	left, err := e.expr(expr.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := e.expr(expr.Right)
	if err != nil {
		return Value{}, err
	}

	line := expr.Pos.Line
	symbol := expr.Op.Symbol()

	if op, ok := arithOps[expr.Op]; ok {
		if left.Type != Double || right.Type != Double {
			return Value{}, codegenErr(line, MsgOperandMismatch, symbol)
		}
		if e.m.fold && left.Const && right.Const {
			return constDouble(op.eval(left.num, right.num)), nil
		}
		name := e.m.tmp(op.name)
		e.m.emit("%s = %s double %s, %s", name, op.inst, left.Ref, right.Ref)
		return Value{Type: Double, Ref: name}, nil
	}

	cmp, ok := compareOps[expr.Op]
	if !ok {
		return Value{}, codegenErr(line, MsgUnsupportedOp, symbol)
	}

	switch {
	case left.Type == Double && right.Type == Double:
		if e.m.fold && left.Const && right.Const {
			return constBool(cmp.eval(left.num, right.num)), nil
		}
		name := e.m.tmp("cmptmp")
		e.m.emit("%s = fcmp %s double %s, %s", name, cmp.pred, left.Ref, right.Ref)
		return Value{Type: Bool, Ref: name}, nil

	case left.Type == Bool && right.Type == Bool &&
		(expr.Op == token.EqualEqual || expr.Op == token.BangEqual):
		pred := "eq"
		if expr.Op == token.BangEqual {
			pred = "ne"
		}
		if e.m.fold && left.Const && right.Const {
			return constBool((left.flag == right.flag) == (pred == "eq")), nil
		}
		name := e.m.tmp("cmptmp")
		e.m.emit("%s = icmp %s i1 %s, %s", name, pred, left.Ref, right.Ref)
		return Value{Type: Bool, Ref: name}, nil

	default:
		return Value{}, codegenErr(line, MsgOperandMismatch, symbol)
	}
}

func (e *emitter) VisitUnary(expr *ast.UnaryExpr) (Value, error) {
	operand, err := e.expr(expr.Right)
	if err != nil {
		return Value{}, err
	}

	line := expr.Pos.Line
	switch expr.Op {
	case token.Minus:
		if operand.Type != Double {
			return Value{}, codegenErr(line, MsgOperandMismatch, "-")
		}
		if e.m.fold && operand.Const {
			return constDouble(-operand.num), nil
		}
		name := e.m.tmp("negtmp")
		e.m.emit("%s = fneg double %s", name, operand.Ref)
		return Value{Type: Double, Ref: name}, nil

	case token.Bang:
		if operand.Type != Bool {
			return Value{}, codegenErr(line, MsgOperandMismatch, "!")
		}
		if e.m.fold && operand.Const {
			return constBool(!operand.flag), nil
		}
		name := e.m.tmp("nottmp")
		e.m.emit("%s = xor i1 %s, true", name, operand.Ref)
		return Value{Type: Bool, Ref: name}, nil

	default:
		return Value{}, codegenErr(line, MsgUnsupportedOp, expr.Op.Symbol())
	}
}

func (e *emitter) VisitGrouped(expr *ast.GroupedExpr) (Value, error) {
	return e.expr(expr.Inner)
}

func (e *emitter) VisitExprStmt(stmt *ast.ExprStmt) (Value, error) {
	return e.expr(stmt.Expr)
}

func (e *emitter) VisitVarDecl(stmt *ast.VarDeclStmt) (Value, error) {
	if prev, ok := e.m.symbols[stmt.Name]; ok && prev.constant {
		return Value{}, codegenErr(stmt.Pos.Line, MsgConstRedeclared, stmt.Name)
	}

	value := constDouble(0)
	if stmt.Init != nil {
		v, err := e.expr(stmt.Init)
		if err != nil {
			return Value{}, err
		}
		value = v
	}

	e.m.symbols[stmt.Name] = binding{value: value, constant: stmt.Constant}
	return value, nil
}
