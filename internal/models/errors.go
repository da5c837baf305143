package models

import (
	"errors"
	"fmt"
)

// ErrSuperseded marks a lookup whose VIN stopped being the active one while
// its safety queries were in flight. Its results are discarded, never
// committed.
var ErrSuperseded = errors.New("lookup superseded by a newer VIN")

// ValidationError reports malformed or incomplete VIN input. Recoverable;
// the user corrects the input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// GateError reports that no contact identifier is on file for the session.
// Recoverable; the user supplies one.
type GateError struct {
	Msg string
}

func (e *GateError) Error() string { return e.Msg }

// DecodeError reports a VIN that could not be resolved to a vehicle.
// Terminal for that lookup.
type DecodeError struct {
	Msg   string
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// SourceFetchError reports the failure of a single safety feed. It is
// attached to the bundle's per-source status and never surfaced as a
// blocking error on its own.
type SourceFetchError struct {
	Source string
	Cause  error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("%s source failed: %v", e.Source, e.Cause)
}

func (e *SourceFetchError) Unwrap() error { return e.Cause }

// TotalOutageError reports that all three safety feeds failed for one
// lookup. User-retriable.
type TotalOutageError struct {
	Causes []error
}

func (e *TotalOutageError) Error() string {
	return fmt.Sprintf("all safety sources failed: %v", errors.Join(e.Causes...))
}
