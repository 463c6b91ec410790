// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     repl
// Description: Evaluation session shared by the TUI and line mode
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/raft/foundation/core/error"
	mdwlog "github.com/msto63/raft/foundation/core/log"
	"github.com/msto63/raft/foundation/raft"
	"github.com/msto63/raft/internal/history"
	"github.com/msto63/raft/internal/irgen"
	"github.com/msto63/raft/pkg/core/version"
)

// DefaultPrompt is shown before every input line
const DefaultPrompt = "Raft> "

// Built-in prompt commands
const (
	CmdExit  = "exit()"
	CmdHelp  = "help()"
	CmdIR    = "ir()"
	CmdClear = "clear()"
)

// Result is the outcome of evaluating one input line
type Result struct {
	Input  string
	Output string
	Err    error
	Quit   bool
	Clear  bool
}

// Message renders the error for display, without the wrapping context
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	var e *mdwerror.Error
	if errors.As(r.Err, &e) {
		return e.RootCause().Error()
	}
	return r.Err.Error()
}

// SessionConfig configures a Session
type SessionConfig struct {
	SessionID string
	FrontEnd  *raft.FrontEnd
	IR        irgen.Options
	Store     history.Store // nil disables history
	Logger    *mdwlog.Logger
}

// Session evaluates prompt lines against one growing IR module
type Session struct {
	id       string
	frontEnd *raft.FrontEnd
	module   *irgen.Module
	externs  []irgen.Extern
	store    history.Store
	logger   *mdwlog.Logger
}

// NewSession creates a session; a random ID is assigned when none is given
func NewSession(cfg SessionConfig) *Session {
	id := cfg.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	logger = logger.WithSession(id).WithField("component", "raft-repl")

	fe := cfg.FrontEnd
	if fe == nil {
		fe = raft.NewFrontEnd(raft.Options{Logger: logger})
	}
	ir := cfg.IR
	if ir.Logger == nil {
		ir.Logger = logger
	}

	return &Session{
		id:       id,
		frontEnd: fe,
		module:   irgen.New(ir),
		externs:  ir.Externs,
		store:    cfg.Store,
		logger:   logger,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Module returns the module accumulated so far
func (s *Session) Module() *irgen.Module {
	return s.module
}

// Eval compiles and generates one input line. Failures are reported in the
// result and leave the session usable.
func (s *Session) Eval(line string) Result {
	input := strings.TrimSpace(line)
	res := Result{Input: input}

	switch input {
	case "":
		return res
	case CmdExit:
		res.Quit = true
		return res
	case CmdHelp:
		res.Output = s.Help()
		return res
	case CmdIR:
		res.Output = strings.TrimRight(s.module.String(), "\n")
		return res
	case CmdClear:
		res.Clear = true
		return res
	}

	stmts, err := s.frontEnd.Compile(input)
	if err != nil {
		res.Err = err
		s.logger.Debug("compile failed", mdwlog.Fields{"error": err.Error()})
		return res
	}

	before := s.module.Instructions()
	values, err := s.module.Generate(stmts)
	if err != nil {
		res.Err = err
		s.logger.Debug("generate failed", mdwlog.Fields{"error": err.Error()})
		return res
	}

	var out []string
	out = append(out, s.module.Since(before)...)
	for _, v := range values {
		out = append(out, "=> "+v.String())
	}
	res.Output = strings.Join(out, "\n")
	return res
}

// Record stores the result in the history store, if one is configured.
// Empty input and prompt commands are not stored.
func (s *Session) Record(ctx context.Context, res Result) error {
	if s.store == nil || res.Input == "" || isCommand(res.Input) {
		return nil
	}
	entry := &history.Entry{
		SessionID: s.id,
		Source:    res.Input,
		Output:    res.Output,
		Error:     res.Message(),
		OK:        res.Err == nil,
	}
	if err := s.store.Record(ctx, entry); err != nil {
		s.logger.WarnWithErr("history record failed", err)
		return err
	}
	return nil
}

// Help returns the text printed by help()
func (s *Session) Help() string {
	var sb strings.Builder
	sb.WriteString("Statements end with ';', for example:\n")
	sb.WriteString("  var x = 2;\n")
	sb.WriteString("  sqrt(x) * 3;\n")
	sb.WriteString("Commands:\n")
	fmt.Fprintf(&sb, "  %-8s show this help\n", CmdHelp)
	fmt.Fprintf(&sb, "  %-8s print the module generated so far\n", CmdIR)
	fmt.Fprintf(&sb, "  %-8s clear the screen\n", CmdClear)
	fmt.Fprintf(&sb, "  %-8s leave the prompt", CmdExit)

	if len(s.externs) > 0 {
		names := make([]string, 0, len(s.externs))
		for _, ext := range s.externs {
			names = append(names, fmt.Sprintf("%s/%d", ext.Name, ext.Params))
		}
		sort.Strings(names)
		sb.WriteString("\nFunctions: " + strings.Join(names, " "))
	}
	return sb.String()
}

// RunLines evaluates every line of r and writes results to w. It is used
// when the prompt is not attached to a terminal.
func (s *Session) RunLines(ctx context.Context, r io.Reader, w io.Writer, prompt string) error {
	fmt.Fprintln(w, version.Banner())

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		res := s.Eval(scanner.Text())
		if res.Quit {
			return nil
		}
		if res.Output != "" {
			fmt.Fprintln(w, res.Output)
		}
		if res.Err != nil {
			fmt.Fprintln(w, "error: "+res.Message())
		}
		_ = s.Record(ctx, res)
	}
}

func isCommand(input string) bool {
	switch input {
	case CmdExit, CmdHelp, CmdIR, CmdClear:
		return true
	}
	return false
}
