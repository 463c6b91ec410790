// File: parser_test.go
// Title: Raft Parser Unit Tests
// Description: Tests precedence, associativity, calls, declarations,
//              double negation and syntax errors of the parser.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial test suite

package parser

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	mdwlog "github.com/msto63/raft/foundation/core/log"
	"github.com/msto63/raft/foundation/raft/ast"
	"github.com/msto63/raft/foundation/raft/token"
)

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	res := Tokenize(src)
	if res.Fault != nil {
		t.Fatalf("Tokenize(%q) fault = %v", src, res.Fault)
	}
	stmts, err := Parse(res.Tokens)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return stmts
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"precedence", "2+3*4;", "(+ 2 (* 3 4))"},
		{"grouping", "(2+3)*4;", "(* (group (+ 2 3)) 4)"},
		{"double negation token", "--x;", "(- (- x))"},
		{"double negation spaced", "- -x;", "(- (- x))"},
		{"negation of group", "-(1);", "(- (group 1))"},
		{"not", "!true;", "(! true)"},
		{"not not", "!!false;", "(! (! false))"},
		{"term left assoc", "1-2-3;", "(- (- 1 2) 3)"},
		{"factor left assoc", "8/4/2;", "(/ (/ 8 4) 2)"},
		{"comparison left assoc", "1<2<3;", "(< (< 1 2) 3)"},
		{"equality left assoc", "a==b!=c;", "(!= (== a b) c)"},
		{"comparison binds tighter than equality", "a<b==c>=d;", "(== (< a b) (>= c d))"},
		{"unary binds tighter than factor", "-a*b;", "(* (- a) b)"},
		{"string literal", `"hi";`, `"hi"`},
		{"number literal", "3.5;", "3.5"},
		{"call with args", "f(1, x+1, g());", "(call f 1 (+ x 1) (call g))"},
		{"call without args", "now();", "(call now)"},
		{"call in expression", "2*sqrt(4)+1;", "(+ (* 2 (call sqrt 4)) 1)"},
		{"grouped identifier is not callable", "(f);", "(group f)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := mustParse(t, tt.input)
			if len(stmts) != 1 {
				t.Fatalf("got %d statements, want 1", len(stmts))
			}
			if got := ast.Print(stmts[0]); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNodeShapes(t *testing.T) {
	stmts := mustParse(t, "2+3*4;")
	es, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ExprStmt", stmts[0])
	}
	add, ok := es.Expr.(*ast.BinaryExpr)
	if !ok || add.Op != token.Plus {
		t.Fatalf("top expression = %#v, want binary +", es.Expr)
	}
	if n, ok := add.Left.(*ast.NumberExpr); !ok || n.Value != 2 {
		t.Errorf("left = %#v, want number 2", add.Left)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != token.Star {
		t.Fatalf("right = %#v, want binary *", add.Right)
	}

	call := mustParse(t, "f();")[0].(*ast.ExprStmt).Expr.(*ast.CallExpr)
	if call.Args == nil || len(call.Args) != 0 {
		t.Errorf("empty call args = %#v, want empty non-nil slice", call.Args)
	}
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		constant bool
		hasInit  bool
	}{
		{"var x = 1;", "(var x 1)", false, true},
		{"const pi = 3.14;", "(const pi 3.14)", true, true},
		{"var x;", "(var x)", false, false},
		{"var msg = \"a\" ;", `(var msg "a")`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmts := mustParse(t, tt.input)
			decl, ok := stmts[0].(*ast.VarDeclStmt)
			if !ok {
				t.Fatalf("statement is %T, want *ast.VarDeclStmt", stmts[0])
			}
			if decl.Constant != tt.constant {
				t.Errorf("Constant = %v, want %v", decl.Constant, tt.constant)
			}
			if (decl.Init != nil) != tt.hasInit {
				t.Errorf("Init = %v, want present=%v", decl.Init, tt.hasInit)
			}
			if got := ast.Print(decl); got != tt.want {
				t.Errorf("Print() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseProgram(t *testing.T) {
	src := "var x = 1;\n\n// comment\nconst y = x * 2;\nprint(x, y);\n"
	stmts := mustParse(t, src)

	want := []struct {
		printed string
		line    int
	}{
		{"(var x 1)", 1},
		{"(const y (* x 2))", 4},
		{"(call print x y)", 5},
	}
	if len(stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(stmts), len(want))
	}
	for i, w := range want {
		if got := ast.Print(stmts[i]); got != w.printed {
			t.Errorf("stmt %d = %s, want %s", i, got, w.printed)
		}
		if got := stmts[i].Position().Line; got != w.line {
			t.Errorf("stmt %d line = %d, want %d", i, got, w.line)
		}
	}
}

func TestParseEmptyProgram(t *testing.T) {
	stmts := mustParse(t, "  // nothing\n")
	if len(stmts) != 0 {
		t.Errorf("got %d statements, want 0", len(stmts))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMsg  string
		wantLine int
	}{
		{"missing operand", "1 + ;", "expected expression", 1},
		{"missing semicolon", "1 + 2", "expected ';' after expression", 1},
		{"missing declaration semicolon", "var x = 1", "expected ';' after variable declaration", 1},
		{"missing identifier", "var = 1;", "expected variable name after 'var'", 1},
		{"keyword as name", "const if = 1;", "expected variable name after 'const'", 1},
		{"empty initializer", "var x = ;", "expected expression", 1},
		{"unclosed group", "(1 + 2;", "expected ')' after expression", 1},
		{"unclosed call", "f(1, 2;", "expected ')' after arguments", 1},
		{"trailing comma", "f(1,);", "expected expression", 1},
		{"only number callable error", "3(4);", "expected ';' after expression", 1},
		{"second statement fails", "x;\ny +;", "expected expression", 2},
		{"stray keyword", "while;", "expected expression", 1},
		{"plus plus has no production", "++x;", "expected expression", 1},
		{"compound assignment has no production", "x += 1;", "expected ';' after expression", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Tokenize(tt.input)
			if res.Fault != nil {
				t.Fatalf("unexpected lexical fault %v", res.Fault)
			}

			stmts, err := Parse(res.Tokens)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded with %v", tt.input, stmts)
			}
			if stmts != nil {
				t.Errorf("Parse() returned partial statements %v", stmts)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error is %T, want *ParseError", err)
			}
			if pe.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", pe.Message, tt.wantMsg)
			}
			if pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", pe.Line, tt.wantLine)
			}
		})
	}
}

func TestParseErrorString(t *testing.T) {
	_, err := Parse(Tokenize("1 + ;").Tokens)
	want := "parse error at line 1: expected expression (near ';')"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	_, err = Parse(Tokenize("1 +").Tokens)
	if !strings.Contains(err.Error(), "near end of input") {
		t.Errorf("Error() = %q, want mention of end of input", err.Error())
	}
}

func TestParseWithoutEOF(t *testing.T) {
	tokens := []Token{
		{Kind: token.Identifier, Lexeme: "x", Line: 1},
		{Kind: token.Semicolon, Lexeme: ";", Line: 1},
	}
	stmts, err := Parse(tokens)
	if err != nil || len(stmts) != 1 {
		t.Fatalf("Parse() = %v, %v", stmts, err)
	}

	if stmts, err := Parse(nil); err != nil || len(stmts) != 0 {
		t.Errorf("Parse(nil) = %v, %v", stmts, err)
	}
}

func TestParserOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  mdwlog.LevelDebug,
		Format: mdwlog.FormatLogfmt,
		Output: &buf,
	})

	p := New(Options{Logger: logger, MaxTokens: 4})
	if _, err := p.Parse(Tokenize("1;").Tokens); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !strings.Contains(buf.String(), `component="raft-parser"`) {
		t.Errorf("expected parser debug log, got %q", buf.String())
	}

	if _, err := p.Parse(Tokenize("1 + 2 + 3;").Tokens); err == nil {
		t.Error("expected MaxTokens violation")
	}

	// A parser can be reused after an error
	if stmts, err := p.Parse(Tokenize("x;").Tokens); err != nil || len(stmts) != 1 {
		t.Errorf("reuse after error = %v, %v", stmts, err)
	}
}

func TestParserSharedAcrossGoroutines(t *testing.T) {
	p := New(Options{})
	sources := []string{"1 + 2 * 3;", "var x = (4 - 5);", "f(1, 2, g());", "!true == false;"}
	want := make([]string, len(sources))
	for i, src := range sources {
		want[i] = ast.PrintProgram(mustParse(t, src))
	}

	var wg sync.WaitGroup
	got := make([][]string, len(sources))
	for i, src := range sources {
		tokens := Tokenize(src).Tokens
		got[i] = make([]string, 50)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := range got[i] {
				stmts, err := p.Parse(tokens)
				if err != nil {
					got[i][n] = err.Error()
					continue
				}
				got[i][n] = ast.PrintProgram(stmts)
			}
		}(i)
	}
	wg.Wait()

	for i := range sources {
		for n, g := range got[i] {
			if g != want[i] {
				t.Errorf("Parse(%q) run %d = %q, want %q", sources[i], n, g, want[i])
			}
		}
	}
}
