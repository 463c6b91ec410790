// File: level.go
// Title: Log Level Definitions
// Description: Log levels used by the Raft front end, the prompt and the
//              CLI. Each level carries its long and short name, its console
//              color and the spellings accepted in configuration files.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2025-03-02 v0.2.0: Dropped audit level
// - 2026-10-16 v0.3.0: Table driven level descriptors

package log

import (
	"strings"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace is used for token-by-token output of the tokenizer
	LevelTrace Level = iota
	// LevelDebug covers parser and generator steps
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	// LevelFatal terminates the program after writing
	LevelFatal
)

type levelDesc struct {
	name    string
	short   string
	color   string
	aliases []string
}

var levels = [...]levelDesc{
	LevelTrace: {"trace", "TRC", "\033[37m", []string{"trc"}},
	LevelDebug: {"debug", "DBG", "\033[36m", []string{"dbg"}},
	LevelInfo:  {"info", "INF", "\033[32m", []string{"inf", "information"}},
	LevelWarn:  {"warn", "WRN", "\033[33m", []string{"wrn", "warning"}},
	LevelError: {"error", "ERR", "\033[31m", []string{"err"}},
	LevelFatal: {"fatal", "FTL", "\033[35m", []string{"ftl"}},
}

func (l Level) desc() (levelDesc, bool) {
	if l < LevelTrace || int(l) >= len(levels) {
		return levelDesc{}, false
	}
	return levels[l], true
}

// String returns the lower-case level name
func (l Level) String() string {
	if d, ok := l.desc(); ok {
		return d.name
	}
	return "unknown"
}

// ShortString returns the three letter tag used by the text format
func (l Level) ShortString() string {
	if d, ok := l.desc(); ok {
		return d.short
	}
	return "???"
}

// Color returns the ANSI color sequence for console output
func (l Level) Color() string {
	if d, ok := l.desc(); ok {
		return d.color
	}
	return "\033[0m"
}

// ShouldLog reports whether l passes the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel accepts a level name or one of its aliases, ignoring case and
// surrounding space. Unknown input yields LevelInfo and a *ParseError.
func ParseLevel(level string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(level))
	for l, d := range levels {
		if s == d.name {
			return Level(l), nil
		}
		for _, alias := range d.aliases {
			if s == alias {
				return Level(l), nil
			}
		}
	}
	return LevelInfo, &ParseError{Input: level, Type: "level"}
}

// ParseError is returned for an unrecognized level or format name
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// DefaultLevel returns the level used when none is configured
func DefaultLevel() Level {
	return LevelInfo
}
