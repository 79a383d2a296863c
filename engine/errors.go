package engine

import (
	"fmt"
	"time"
)

// LaunchError means the engine process could not be started. It is fatal:
// without an engine there is no session.
type LaunchError struct {
	Bin string
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("error starting engine %q: %v", e.Bin, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// TimeoutError means a command got no reply before its deadline. The
// command is not retried: replaying a move-affecting command against a
// stateful engine risks double-application.
type TimeoutError struct {
	Command string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q timed out after %dms", e.Command, e.Elapsed.Milliseconds())
}

// RejectedError is an engine-reported failure, e.g. an illegal move.
type RejectedError struct {
	Command string
	Reason  string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("command %q rejected: %s", e.Command, e.Reason)
}

// DecodeError means a reply did not have the shape the command expects.
// It signals a client/engine protocol mismatch, not an engine failure.
type DecodeError struct {
	Command string
	Raw     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("command %q returned unexpected payload %q", e.Command, e.Raw)
}
