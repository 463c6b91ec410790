package irgen

import (
	"errors"
	"math"
	"strings"
	"testing"

	mdwerror "github.com/msto63/raft/foundation/core/error"
	"github.com/msto63/raft/foundation/raft"
)

var testExterns = []Extern{
	{Name: "sqrt", Params: 1},
	{Name: "pow", Params: 2},
	{Name: "now", Params: 0},
}

func generate(t *testing.T, m *Module, source string) ([]Value, error) {
	t.Helper()
	stmts, err := raft.Compile(source)
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", source, err)
	}
	return m.Generate(stmts)
}

func mustGenerate(t *testing.T, m *Module, source string) []Value {
	t.Helper()
	values, err := generate(t, m, source)
	if err != nil {
		t.Fatalf("Generate(%q) error = %v", source, err)
	}
	return values
}

func TestGenerateInstructions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"add", "1 + 2;", []string{"%addtmp = fadd double 1.000000e+00, 2.000000e+00"}},
		{"sub", "5 - 1;", []string{"%subtmp = fsub double 5.000000e+00, 1.000000e+00"}},
		{"mul div", "2 * 3 / 4;", []string{
			"%multmp = fmul double 2.000000e+00, 3.000000e+00",
			"%divtmp = fdiv double %multmp, 4.000000e+00",
		}},
		{"names are unique", "1 + 2; 3 + 4;", []string{
			"%addtmp = fadd double 1.000000e+00, 2.000000e+00",
			"%addtmp1 = fadd double 3.000000e+00, 4.000000e+00",
		}},
		{"compare", "1 < 2;", []string{"%cmptmp = fcmp olt double 1.000000e+00, 2.000000e+00"}},
		{"not equal", "1 != 2;", []string{"%cmptmp = fcmp one double 1.000000e+00, 2.000000e+00"}},
		{"bool equality", "true == false;", []string{"%cmptmp = icmp eq i1 true, false"}},
		{"negate", "-3;", []string{"%negtmp = fneg double 3.000000e+00"}},
		{"not", "!true;", []string{"%nottmp = xor i1 true, true"}},
		{"grouped", "(1 + 2) * 3;", []string{
			"%addtmp = fadd double 1.000000e+00, 2.000000e+00",
			"%multmp = fmul double %addtmp, 3.000000e+00",
		}},
		{"call", "pow(2, 8);", []string{"%calltmp = call double @pow(double 2.000000e+00, double 8.000000e+00)"}},
		{"call without args", "now();", []string{"%calltmp = call double @now()"}},
		{"variable", "var x = 4; sqrt(x);", []string{"%calltmp = call double @sqrt(double 4.000000e+00)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Options{Externs: testExterns})
			mustGenerate(t, m, tt.source)

			if len(m.body) != len(tt.want) {
				t.Fatalf("body = %q, want %q", m.body, tt.want)
			}
			for i, want := range tt.want {
				if m.body[i] != want {
					t.Errorf("body[%d] = %q, want %q", i, m.body[i], want)
				}
			}
		})
	}
}

func TestGenerateFold(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3;", "double 7.000000e+00"},
		{"-(4 - 6);", "double 2.000000e+00"},
		{"2 <= 1;", "i1 false"},
		{"!(1 == 1);", "i1 false"},
		{"true != false;", "i1 true"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			m := New(Options{Fold: true})
			values := mustGenerate(t, m, tt.source)
			if got := values[0].String(); got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
			if !values[0].Const {
				t.Error("folded value should be constant")
			}
			if m.Instructions() != 0 {
				t.Errorf("Instructions() = %d, want 0", m.Instructions())
			}
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
		ident   string
	}{
		{"unknown variable", "y + 1;", MsgUnknownVariable, "y"},
		{"unknown function", "foo(1);", MsgUnknownFunction, "foo"},
		{"too few arguments", "pow(1);", MsgArgumentCount, "pow"},
		{"too many arguments", "sqrt(1, 2);", MsgArgumentCount, "sqrt"},
		{"const redeclared", "const k = 1; const k = 2;", MsgConstRedeclared, "k"},
		{"string arithmetic", "\"a\" + 1;", MsgOperandMismatch, "+"},
		{"negate bool", "-true;", MsgOperandMismatch, "-"},
		{"not number", "!1;", MsgOperandMismatch, "!"},
		{"ordered bools", "true < false;", MsgOperandMismatch, "<"},
		{"string argument", "sqrt(\"x\");", MsgNonNumericArg, "sqrt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Options{Externs: testExterns})
			_, err := generate(t, m, tt.source)
			if err == nil {
				t.Fatal("Generate() expected error")
			}
			if !mdwerror.HasCode(err, mdwerror.CodeCodegen) {
				t.Errorf("error code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeCodegen)
			}
			var cgErr *CodegenError
			if !errors.As(err, &cgErr) {
				t.Fatalf("error %v does not wrap *CodegenError", err)
			}
			if cgErr.Message != tt.message || cgErr.Name != tt.ident {
				t.Errorf("CodegenError = %q %q, want %q %q", cgErr.Message, cgErr.Name, tt.message, tt.ident)
			}
		})
	}
}

func TestCodegenErrorLine(t *testing.T) {
	m := New(Options{})
	_, err := generate(t, m, "1;\n\nmissing;")
	var cgErr *CodegenError
	if !errors.As(err, &cgErr) {
		t.Fatalf("error %v does not wrap *CodegenError", err)
	}
	if cgErr.Line != 3 {
		t.Errorf("Line = %d, want 3", cgErr.Line)
	}
	if want := "codegen error at line 3: unknown variable name 'missing'"; cgErr.Error() != want {
		t.Errorf("Error() = %q, want %q", cgErr.Error(), want)
	}
}

func TestSessionBindings(t *testing.T) {
	m := New(Options{})
	mustGenerate(t, m, "var x = 1;")
	values := mustGenerate(t, m, "x + 1;")
	if values[0].Ref != "%addtmp" {
		t.Errorf("value = %v, want %%addtmp", values[0])
	}

	mustGenerate(t, m, "var x = 2;")
	if v, _ := m.Lookup("x"); v.Ref != "2.000000e+00" {
		t.Errorf("Lookup(x) = %v, want redeclared value", v)
	}

	values = mustGenerate(t, m, "var z;")
	if n, ok := values[0].Number(); !ok || n != 0 {
		t.Errorf("uninitialized declaration = %v, want double 0", values[0])
	}
}

func TestGenerateRollback(t *testing.T) {
	m := New(Options{Externs: testExterns})
	mustGenerate(t, m, "var a = 1 + 2;")
	before := m.String()

	if _, err := generate(t, m, "var b = sqrt(4) + \"s\"; b;"); err == nil {
		t.Fatal("Generate() expected error")
	}
	if _, ok := m.Lookup("b"); ok {
		t.Error("failed Generate() left binding b behind")
	}
	if after := m.String(); after != before {
		t.Errorf("module changed after failed Generate():\n%s\nwant:\n%s", after, before)
	}

	// Names released by the rollback are reused
	mustGenerate(t, m, "sqrt(a);")
	if m.body[len(m.body)-1] != "%calltmp = call double @sqrt(double %addtmp)" {
		t.Errorf("last instruction = %q", m.body[len(m.body)-1])
	}
}

func TestModuleString(t *testing.T) {
	m := New(Options{Name: "demo", Externs: testExterns})
	mustGenerate(t, m, "\"hi\"; \"hi\"; \"a\nb\"; pow(2, sqrt(4));")

	out := m.String()
	for _, want := range []string{
		"; ModuleID = 'demo'",
		`@.str.0 = private unnamed_addr constant [3 x i8] c"hi\00"`,
		`@.str.1 = private unnamed_addr constant [4 x i8] c"a\0Ab\00"`,
		"declare double @pow(double, double)",
		"declare double @sqrt(double)",
		"define void @main() {",
		"  %calltmp = call double @sqrt(double 4.000000e+00)",
		"  %calltmp1 = call double @pow(double 2.000000e+00, double %calltmp)",
		"  ret void",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "@.str.2") {
		t.Error("identical literals should share a global")
	}
	if strings.Index(out, "declare double @sqrt") > strings.Index(out, "declare double @pow") {
		t.Error("externs should be declared in order of first use")
	}
}

func TestDefaultModuleName(t *testing.T) {
	if got := New(Options{}).Name(); got != DefaultModuleName {
		t.Errorf("Name() = %q, want %q", got, DefaultModuleName)
	}
}

func TestFormatDouble(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.000000e+00"},
		{1, "1.000000e+00"},
		{0.5, "5.000000e-01"},
		{1.0 / 3.0, "0x3FD5555555555555"},
		{math.Inf(1), "0x7FF0000000000000"},
	}
	for _, tt := range tests {
		if got := FormatDouble(tt.in); got != tt.want {
			t.Errorf("FormatDouble(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSince(t *testing.T) {
	m := New(Options{})
	mustGenerate(t, m, "1 + 2;")
	n := m.Instructions()
	mustGenerate(t, m, "3 * 4; 5 - 6;")

	got := m.Since(n)
	want := []string{
		"%multmp = fmul double 3.000000e+00, 4.000000e+00",
		"%subtmp = fsub double 5.000000e+00, 6.000000e+00",
	}
	if len(got) != len(want) {
		t.Fatalf("Since(%d) = %q, want %q", n, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Since(%d)[%d] = %q, want %q", n, i, got[i], want[i])
		}
	}
	if m.Since(m.Instructions()) != nil {
		t.Error("Since(len) should be nil")
	}
}
