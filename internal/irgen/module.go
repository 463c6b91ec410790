// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     irgen
// Description: Module state and textual rendering
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package irgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/raft/foundation/core/error"
	mdwlog "github.com/msto63/raft/foundation/core/log"
	"github.com/msto63/raft/foundation/raft/ast"
)

// DefaultModuleName is used when Options.Name is empty
const DefaultModuleName = "Module"

// Extern declares an external function taking Params doubles and returning a double
type Extern struct {
	Name   string
	Params int
}

// Options configures a Module. Fold evaluates operations on constant
// operands at generation time instead of emitting instructions.
type Options struct {
	Name    string
	Externs []Extern
	Fold    bool
	Logger  *mdwlog.Logger
}

type binding struct {
	value    Value
	constant bool
}

// Module accumulates the IR of every statement generated into it. Bindings
// persist across Generate calls so an interactive session can refer back
// to earlier declarations.
type Module struct {
	name    string
	fold    bool
	logger  *mdwlog.Logger
	externs map[string]Extern

	declared []string
	globals  []string
	strs     map[string]string
	body     []string
	symbols  map[string]binding
	names    map[string]int
}

// New creates an empty module
func New(opts Options) *Module {
	name := opts.Name
	if name == "" {
		name = DefaultModuleName
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	m := &Module{
		name:    name,
		fold:    opts.Fold,
		logger:  logger.WithField("component", "raft-irgen"),
		externs: make(map[string]Extern, len(opts.Externs)),
		strs:    make(map[string]string),
		symbols: make(map[string]binding),
		names:   make(map[string]int),
	}
	for _, ext := range opts.Externs {
		m.externs[ext.Name] = ext
	}
	return m
}

// Name returns the module identifier
func (m *Module) Name() string {
	return m.name
}

// Generate lowers stmts into the module and returns one value per statement.
// On failure the module is left as it was before the call.
func (m *Module) Generate(stmts []ast.Stmt) ([]Value, error) {
	snap := m.snapshot()
	e := &emitter{m: m}

	values := make([]Value, 0, len(stmts))
	for _, stmt := range stmts {
		v, err := ast.AcceptStmt[Value](stmt, e)
		if err != nil {
			m.restore(snap)
			return nil, wrapCodegen(err)
		}
		values = append(values, v)
	}

	m.logger.Debug("statements generated", mdwlog.Fields{
		"statements":   len(stmts),
		"instructions": len(m.body),
	})
	return values, nil
}

// Lookup returns the value bound to name
func (m *Module) Lookup(name string) (Value, bool) {
	b, ok := m.symbols[name]
	return b.value, ok
}

// Instructions returns the number of emitted instructions
func (m *Module) Instructions() int {
	return len(m.body)
}

// Since returns the instructions emitted after the first n
func (m *Module) Since(n int) []string {
	if n < 0 || n >= len(m.body) {
		return nil
	}
	out := make([]string, len(m.body)-n)
	copy(out, m.body[n:])
	return out
}

// String renders the module as an LLVM-style listing
func (m *Module) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; ModuleID = '%s'\n", m.name)
	fmt.Fprintf(&sb, "source_filename = %q\n", m.name)

	if len(m.globals) > 0 {
		sb.WriteString("\n")
		for _, g := range m.globals {
			sb.WriteString(g + "\n")
		}
	}

	if len(m.declared) > 0 {
		sb.WriteString("\n")
		for _, name := range m.declared {
			params := make([]string, m.externs[name].Params)
			for i := range params {
				params[i] = "double"
			}
			fmt.Fprintf(&sb, "declare double @%s(%s)\n", name, strings.Join(params, ", "))
		}
	}

	sb.WriteString("\ndefine void @main() {\nentry:\n")
	for _, inst := range m.body {
		sb.WriteString("  " + inst + "\n")
	}
	sb.WriteString("  ret void\n}\n")
	return sb.String()
}

func (m *Module) emit(format string, args ...interface{}) {
	m.body = append(m.body, fmt.Sprintf(format, args...))
}

// tmp returns a fresh local name: base, base1, base2, ...
func (m *Module) tmp(base string) string {
	n := m.names[base]
	m.names[base] = n + 1
	if n == 0 {
		return "%" + base
	}
	return "%" + base + strconv.Itoa(n)
}

func (m *Module) declare(name string) {
	for _, d := range m.declared {
		if d == name {
			return
		}
	}
	m.declared = append(m.declared, name)
}

// intern places s in the global string pool, reusing identical literals
func (m *Module) intern(s string) string {
	if label, ok := m.strs[s]; ok {
		return label
	}
	label := fmt.Sprintf("@.str.%d", len(m.strs))
	m.strs[s] = label
	m.globals = append(m.globals, fmt.Sprintf(
		"%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"",
		label, len(s)+1, escapeBytes(s)))
	return label
}

func escapeBytes(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c > 0x7e || c == '"' || c == '\\' {
			fmt.Fprintf(&sb, "\\%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

type snapshot struct {
	declared, globals, body int
	strs                    map[string]string
	symbols                 map[string]binding
	names                   map[string]int
}

func (m *Module) snapshot() snapshot {
	s := snapshot{
		declared: len(m.declared),
		globals:  len(m.globals),
		body:     len(m.body),
		strs:     make(map[string]string, len(m.strs)),
		symbols:  make(map[string]binding, len(m.symbols)),
		names:    make(map[string]int, len(m.names)),
	}
	for k, v := range m.strs {
		s.strs[k] = v
	}
	for k, v := range m.symbols {
		s.symbols[k] = v
	}
	for k, v := range m.names {
		s.names[k] = v
	}
	return s
}

func (m *Module) restore(s snapshot) {
	m.declared = m.declared[:s.declared]
	m.globals = m.globals[:s.globals]
	m.body = m.body[:s.body]
	m.strs = s.strs
	m.symbols = s.symbols
	m.names = s.names
}

func wrapCodegen(err error) error {
	wrapped := mdwerror.Wrap(err, "code generation failed").
		WithCode(mdwerror.CodeCodegen).
		WithOperation("irgen.Generate")

	var cgErr *CodegenError
	if errors.As(err, &cgErr) {
		wrapped = wrapped.WithDetail("line", cgErr.Line)
		if cgErr.Name != "" {
			wrapped = wrapped.WithDetail("name", cgErr.Name)
		}
	}
	return wrapped
}
