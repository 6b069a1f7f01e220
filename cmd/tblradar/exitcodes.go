package main

import "fmt"

// Exit codes for the tblradar CLI.
const (
	ExitOK           = 0 // Chart rendered.
	ExitInvalidArgs  = 2 // Invalid arguments or bad path.
	ExitUpdateFailed = 3 // Host/snapshot read or render failed.
	ExitNeedsFields  = 4 // Category or value fields unassigned.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitNeedsFields:
			msg = "tblradar: fields unassigned"
		case ExitUpdateFailed:
			msg = "tblradar: update failed"
		default:
			msg = "tblradar: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
