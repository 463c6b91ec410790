// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model for the interactive prompt
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/raft/pkg/core/version"
)

// DefaultMaxLines caps the transcript when Config.MaxLines is zero
const DefaultMaxLines = 500

// Config holds prompt configuration
type Config struct {
	Prompt   string
	MaxLines int
}

// Model is the Bubbletea model for the interactive prompt
type Model struct {
	// State
	width    int
	height   int
	ready    bool
	quitting bool
	err      error

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Transcript
	lines    []string
	maxLines int

	// Previously submitted lines, for up/down recall
	recall    []string
	recallPos int

	prompt  string
	session *Session
}

// New creates a prompt model on top of session
func New(session *Session, cfg Config) Model {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	maxLines := cfg.MaxLines
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	ti := textinput.New()
	ti.Prompt = PromptStyle.Render(prompt)
	ti.Placeholder = "var x = 1;"
	ti.CharLimit = 4000
	ti.Width = 76
	ti.Focus()

	m := Model{
		input:    ti,
		maxLines: maxLines,
		prompt:   prompt,
		session:  session,
	}
	m.appendLines(BannerStyle.Render(version.Banner()))
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submit()

		case tea.KeyUp:
			m.recallStep(-1)
			return m, nil

		case tea.KeyDown:
			m.recallStep(1)
			return m, nil

		case tea.KeyPgUp:
			m.viewport.ViewUp()
			return m, nil

		case tea.KeyPgDown:
			m.viewport.ViewDown()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		footerHeight := 4 // Input, help bar and transcript border
		viewportHeight := msg.Height - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - len(m.prompt) - 4
		m.updateViewportContent()

	case historyRecordedMsg:
		m.err = msg.err
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit evaluates the current input line
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	res := m.session.Eval(line)
	if res.Input == "" {
		return m, nil
	}

	m.recall = append(m.recall, res.Input)
	m.recallPos = len(m.recall)

	if res.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	if res.Clear {
		m.lines = nil
		m.updateViewportContent()
		return m, nil
	}

	m.appendLines(PromptStyle.Render(m.prompt) + InputEchoStyle.Render(res.Input))
	if res.Output != "" {
		for _, out := range strings.Split(res.Output, "\n") {
			if strings.HasPrefix(out, "=> ") {
				m.appendLines(ValueStyle.Render(out))
			} else {
				m.appendLines(OutputStyle.Render(out))
			}
		}
	}
	if res.Err != nil {
		m.appendLines(RenderError(res.Message()))
	}
	m.updateViewportContent()

	return m, m.record(res)
}

// record writes the result to the history store in the background
func (m Model) record(res Result) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return historyRecordedMsg{err: session.Record(ctx, res)}
	}
}

func (m *Model) recallStep(delta int) {
	if len(m.recall) == 0 {
		return
	}
	pos := m.recallPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.recall) {
		m.recallPos = len(m.recall)
		m.input.Reset()
		return
	}
	m.recallPos = pos
	m.input.SetValue(m.recall[pos])
	m.input.CursorEnd()
}

func (m *Model) appendLines(lines ...string) {
	m.lines = append(m.lines, lines...)
	if over := len(m.lines) - m.maxLines; over > 0 {
		m.lines = m.lines[over:]
	}
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// Transcript returns the lines shown so far
func (m Model) Transcript() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// Quitting reports whether the prompt has been asked to exit
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return strings.Join(m.lines, "\n") + "\n" + m.input.View()
	}

	var b strings.Builder
	b.WriteString(TranscriptStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: run • ↑/↓: recall • pgup/pgdn: scroll • help() • exit()"))
	if m.err != nil {
		b.WriteString("  " + ErrorStyle.Render("history: "+m.err.Error()))
	}
	return b.String()
}

// Run starts the full-screen prompt
func Run(session *Session, cfg Config) error {
	p := tea.NewProgram(New(session, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
