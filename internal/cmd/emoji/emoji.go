// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used in user-facing command output.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Info marks informational messages.
	Info = "i"
)
