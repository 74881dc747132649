// Package realtime maintains the client's single live websocket channel to
// the chat server.
//
// A Channel owns at most one connection. Connect always tears down the
// previous connection before dialing, so a stale handler never sees frames
// from a newer connection. Frames are raw JSON text, one message per frame.
//
// A Reconnector wraps a Channel and re-dials with bounded exponential
// backoff when the connection drops without Disconnect being called.
package realtime
