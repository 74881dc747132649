package realtime

import "context"

// State is the connection state of a Channel.
type State int

const (
	// StateIdle: no connection, none expected (never connected or
	// explicitly disconnected).
	StateIdle State = iota
	StateOpen
	// StateClosed: the last connection was lost or could not be opened.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Transport is what the shell needs from a realtime connection. Both
// Channel and Reconnector implement it.
type Transport interface {
	Connect(ctx context.Context, url string, h Handler) error
	Disconnect()
	Send(msg any)
	TrySend(msg any) error
	State() State
}

var (
	_ Transport = (*Channel)(nil)
	_ Transport = (*Reconnector)(nil)
)
