// Package error provides the structured error type used across the Raft toolchain.
//
// Package: error
// Title: Raft Error Handling Framework
// Description: Implements a structured error with codes, severity, operation
//              context and free-form details. Front-end faults (lexical and
//              syntactic) and backend faults are wrapped into this type at the
//              package boundaries so that callers and loggers see one shape.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-03-02 v0.2.0: Trimmed to the codes used by the Raft toolchain
//
// Usage:
//
//	err := mdwerror.New("unexpected end of input").
//		WithCode(mdwerror.CodeSyntax).
//		WithDetail("line", 3).
//		WithOperation("parser.Parse")
//
//	wrapped := mdwerror.Wrap(err, "compile main.rf")
//	if mdwerror.HasCode(wrapped, mdwerror.CodeSyntax) {
//		// report to the user
//	}
package error
