package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gochat/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// CodeSessionAbsent is the structured error code a server may send when the
// request carries no live session.
const CodeSessionAbsent = "session_absent"

// ErrorBody is the server's JSON error payload: {"error": "...", "code": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NetworkError means no response could be obtained from the server.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool {
	return target == ErrUnavailable
}

// ServerRejection is a non-2xx response. Body is the parsed error payload;
// Raw keeps the response bytes verbatim.
type ServerRejection struct {
	Op     string
	Status int
	Body   ErrorBody
	Raw    []byte
}

func (e *ServerRejection) Error() string {
	msg := e.Body.Error
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s: server rejected request (%d): %s", e.Op, e.Status, msg)
}

// SessionAbsent reports whether the server said there is no active session.
func (e *ServerRejection) SessionAbsent() bool {
	return e.Body.Code == CodeSessionAbsent || e.Status == http.StatusUnauthorized
}

func (e *ServerRejection) Is(target error) bool {
	switch target {
	case common.ErrSessionAbsent:
		return e.SessionAbsent()
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}
