// Package log provides structured logging for the Raft tool chain.
//
// Package: log
// Title: Raft Structured Logging
// Description: Structured logger with levels, persistent context fields,
//              session tagging and four output formats. The front end logs
//              tokenizer and parser events at debug level; the CLI and the
//              interactive prompt configure the logger from the config file.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-03-02 v0.2.0: Session context, stderr default, deterministic field order
//
// Usage:
//   import mdwlog "github.com/msto63/raft/foundation/core/log"
//
//   logger := mdwlog.New().
//     WithLevel(mdwlog.LevelDebug).
//     WithFormat(mdwlog.FormatText).
//     WithField("component", "raft-parser")
//
//   logger.Debug("statement parsed", mdwlog.Fields{"line": 3})
//
//   timer := logger.StartTimer("compile")
//   // ... tokenize and parse
//   timer.Stop()
package log
