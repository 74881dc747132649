package common

import "errors"

var (
	// ErrSessionAbsent reports that the server has no active session for
	// the caller. Callers match it with errors.Is.
	ErrSessionAbsent = errors.New("no active session")
)
