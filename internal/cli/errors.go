package cli

import "errors"

// ErrNoMatch signals that a search completed without matching any line.
// It carries no diagnostic value; main maps it to the grep-style exit
// code 1.
var ErrNoMatch = errors.New("no lines matched")

// Exit codes follow the grep convention.
const (
	ExitMatch   = 0
	ExitNoMatch = 1
	ExitError   = 2
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitMatch
	case errors.Is(err, ErrNoMatch):
		return ExitNoMatch
	default:
		return ExitError
	}
}
