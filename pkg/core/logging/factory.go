// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating configured Foundation loggers
// Author:      Mike Stoffels
// Created:     2025-02-16
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	mdwlog "github.com/msto63/raft/foundation/core/log"
)

var (
	// Log files opened by NewLogger, closed by CloseAll
	openFiles   []*os.File
	openFilesMu sync.Mutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name recorded in every entry
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: json, text, console or logfmt (default: text)
	Format string

	// File receives the log instead of Output when set. The interactive
	// prompt uses this because it owns the terminal.
	File string

	// Output defaults to stderr
	Output io.Writer

	// Additional outputs besides Output or File
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "warn",
		Format:      "text",
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, error) {
	level := parseLevel(cfg.Level)

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil && cfg.Format != "" {
		return nil, fmt.Errorf("logger %s: %w", cfg.ServiceName, err)
	}
	if cfg.Format == "" {
		format = mdwlog.FormatText
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return nil, err
		}
		output = f
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	}), nil
}

// NewSimpleLogger creates a stderr logger with the default configuration
func NewSimpleLogger(serviceName string) *mdwlog.Logger {
	logger, err := NewLogger(DefaultLoggerConfig(serviceName))
	if err != nil {
		return mdwlog.GetDefault()
	}
	return logger
}

// CloseAll closes every log file opened by NewLogger
func CloseAll() error {
	openFilesMu.Lock()
	defer openFilesMu.Unlock()

	var firstErr error
	for _, f := range openFiles {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	openFiles = nil
	return firstErr
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	openFilesMu.Lock()
	openFiles = append(openFiles, f)
	openFilesMu.Unlock()

	return f, nil
}

// parseLevel converts a string level to mdwlog.Level
func parseLevel(level string) mdwlog.Level {
	switch level {
	case "trace":
		return mdwlog.LevelTrace
	case "debug":
		return mdwlog.LevelDebug
	case "info":
		return mdwlog.LevelInfo
	case "warn", "warning":
		return mdwlog.LevelWarn
	case "error":
		return mdwlog.LevelError
	case "fatal":
		return mdwlog.LevelFatal
	default:
		return mdwlog.LevelWarn
	}
}
