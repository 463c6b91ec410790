// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     version
// Description: Central version management for the tool chain
// Author:      Mike Stoffels
// Created:     2025-02-16
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for the Raft components
const (
	// Language is the version of the Raft language front end
	Language = "1.0.0"

	// CLI is the version of the raft command
	CLI = "1.0.0"

	// IR is the version of the textual IR emitted by the backend
	IR = "1.0.0"
)

// Banner returns the greeting printed by the interactive prompt
func Banner() string {
	return fmt.Sprintf("Raft JIT [v%s]\nlicensed under GPL 3\nUse help() for more information", Language)
}

// Component returns the version for a given component name
func Component(name string) string {
	switch name {
	case "cli", "raft":
		return CLI
	case "ir", "backend":
		return IR
	default:
		return Language
	}
}
