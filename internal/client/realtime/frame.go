package realtime

import (
	"encoding/json"
	"errors"
)

var (
	// ErrMalformedFrame marks an inbound frame that is not valid JSON.
	// Such frames are logged and dropped; the connection stays open.
	ErrMalformedFrame = errors.New("malformed frame")

	ErrNotConnected = errors.New("realtime channel is not connected")
)

// Frame is one inbound message: the raw JSON bytes of a single websocket
// frame. Only syntactic validity is checked.
type Frame []byte

// Decode unmarshals the frame into v.
func (f Frame) Decode(v any) error {
	return json.Unmarshal(f, v)
}

// MarshalJSON lets a Frame be sent back as-is.
func (f Frame) MarshalJSON() ([]byte, error) {
	if len(f) == 0 {
		return []byte("null"), nil
	}
	return f, nil
}

func (f Frame) String() string { return string(f) }

// Handler receives inbound frames in arrival order. It runs on the
// connection's read goroutine and must not call Connect or Disconnect on
// the same channel synchronously.
type Handler func(Frame)
