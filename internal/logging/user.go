package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output. Kept apart from the structured log so that -v does
// not change what the player sees.

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetUserOutput redirects user messages. Either writer may be nil to keep
// the current one.
func SetUserOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...any) {
	fmt.Fprintf(stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...any) {
	fmt.Fprintf(stdout, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...any) {
	fmt.Fprintf(stderr, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...any) {
	fmt.Fprintf(stderr, "✗ "+format+"\n", args...)
}
