// File: timer.go
// Title: Phase Timer
// Description: Measures the duration of an operation such as a compile
//              and logs it on completion, with optional checkpoints for the
//              individual phases (tokenize, parse, generate).
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2025-03-02 v0.2.0: Checkpoints record phase durations on the final entry

package log

import (
	"time"
)

// Timer measures the duration of one operation
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	lastMark  time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates and starts a timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	now := time.Now()
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: now,
		lastMark:  now,
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Checkpoint records the duration since the previous checkpoint under
// "<name>_ms" and returns it.
func (t *Timer) Checkpoint(name string) time.Duration {
	if t.stopped {
		return 0
	}
	now := time.Now()
	phase := now.Sub(t.lastMark)
	t.lastMark = now
	t.fields[name+"_ms"] = float64(phase.Nanoseconds()) / 1e6
	return phase
}

// Stop stops the timer and logs the elapsed time. Stopping twice returns 0.
func (t *Timer) Stop() time.Duration {
	return t.finish(nil)
}

// StopWithError stops the timer and logs a failure with the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	return t.finish(err)
}

// IsRunning returns true if the timer has not been stopped
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

func (t *Timer) finish(err error) time.Duration {
	if t.stopped {
		return 0
	}
	elapsed := t.Elapsed()
	t.stopped = true

	if t.logger == nil {
		return elapsed
	}

	t.fields["operation"] = t.operation
	t.fields["success"] = err == nil

	level, message := t.level, t.operation+" completed"
	if err != nil {
		message = t.operation + " failed"
		if level < LevelWarn {
			level = LevelWarn
		}
	}

	entryFields := t.fields.Merge(nil)
	t.logger.logTimed(level, message, err, elapsed, entryFields)
	return elapsed
}
