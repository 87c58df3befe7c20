package config

import (
	"fmt"
	"os"
	"strings"
)

// Exitf prints a fatal CLI error to stderr on its own line and exits with
// status 1. Deferred calls do not run.
func Exitf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, exitMessage(format, args...))
	os.Exit(1)
}

// exitMessage formats a fatal message without trailing newlines, so wrapped
// errors that end in one are not printed with a blank line after them.
func exitMessage(format string, args ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
