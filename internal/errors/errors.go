// Package errors renders command failures for the terminal and picks the
// process exit code.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/opjerryisgood-cloud/water-app/internal/config"
	"github.com/opjerryisgood-cloud/water-app/internal/keyring"
	"github.com/opjerryisgood-cloud/water-app/internal/lock"
	"github.com/opjerryisgood-cloud/water-app/internal/logger"
	"github.com/opjerryisgood-cloud/water-app/internal/storage"
)

// Exit codes
const (
	ExitFailure = 1
	ExitConfig  = 2
	ExitLocked  = 3
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint suggests a next step for failures the user can act on.
func Hint(err error) string {
	switch {
	case errors.Is(err, lock.ErrLocked):
		return "Close the other water window or command, then try again."
	case errors.Is(err, keyring.ErrKeyringUnavailable):
		return "Set storage.secure_storage: false to keep drinks in a JSON file instead."
	case errors.Is(err, storage.ErrCorrupt):
		return "Run 'water doctor' to inspect the archive, or 'water backup restore' to roll back."
	case errors.Is(err, config.ErrInvalidConfig):
		return "Fix the config file or regenerate it with 'water init --force'."
	}
	return ""
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfig
	case errors.Is(err, lock.ErrLocked):
		return ExitLocked
	}
	return ExitFailure
}

// Fatal logs err, prints it with a hint when one applies, and exits.
// A nil error returns immediately.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(os.Stderr, "  "+hint)
	}
	os.Exit(ExitCode(err))
}
