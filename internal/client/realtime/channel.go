package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gochat/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Config holds the dial and keepalive settings of a Channel.
type Config struct {
	DialTimeout time.Duration
	// PongWait is how long the read side waits for any frame (including a
	// pong) before treating the connection as dead. Zero disables it.
	PongWait time.Duration
	// PingPeriod must be shorter than PongWait. Zero disables pings.
	PingPeriod     time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

func DefaultConfig() Config {
	return Config{
		DialTimeout:    10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

type Option func(*Channel)

// WithCookieJar makes the dialer send the cookies held by jar, so a
// cookie-based session established over HTTP also authenticates the
// websocket handshake.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Channel) {
		c.dialer.Jar = jar
	}
}

// WithHeader sets a function that supplies extra handshake headers, e.g.
// the bearer token in token mode.
func WithHeader(fn func(ctx context.Context) http.Header) Option {
	return func(c *Channel) {
		c.header = fn
	}
}

// Channel is a single-connection websocket client.
type Channel struct {
	cfg    Config
	dialer *websocket.Dialer
	header func(ctx context.Context) http.Header
	log    logging.Logger

	// mu serializes Connect and Disconnect.
	mu sync.Mutex

	connMu sync.RWMutex
	conn   *connection
	state  State
	onDrop func(error)
}

func NewChannel(cfg Config, log logging.Logger, opts ...Option) *Channel {
	c := &Channel{
		cfg: cfg,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.DialTimeout,
		},
		log:   log.With("component", "realtime"),
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnDrop registers fn to be called, from the read goroutine, when the
// current connection closes without Disconnect or Connect being called.
func (c *Channel) OnDrop(fn func(error)) {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	c.onDrop = fn
}

// Connect closes any existing connection and then dials url. Frames
// received on the new connection are passed to h.
func (c *Channel) Connect(ctx context.Context, url string, h Handler) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeCurrent(ctx, StateIdle)

	dctx := ctx
	if c.cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, c.cfg.DialTimeout)
		defer cancel()
	}

	var hdr http.Header
	if c.header != nil {
		hdr = c.header(ctx)
	}

	ws, resp, err := c.dialer.DialContext(dctx, url, hdr)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		c.setState(StateClosed)
		c.log.Warn(ctx, "dial failed", "url", url, logging.Err(err))
		return fmt.Errorf("realtime: dial %s: %w", url, err)
	}

	conn := &connection{
		id:      uuid.NewString(),
		ws:      ws,
		handler: h,
		done:    make(chan struct{}),
	}
	conn.log = c.log.With("conn_id", conn.id)

	c.connMu.Lock()
	c.conn = conn
	c.state = StateOpen
	c.connMu.Unlock()

	go c.readLoop(conn)
	go c.pingLoop(conn)

	conn.log.Info(ctx, "connected", "url", url)
	return nil
}

// Disconnect closes the current connection, if any.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCurrent(context.Background(), StateIdle)
}

// Send writes msg as JSON when the channel is open. Otherwise the message
// is dropped without error; use TrySend when delivery matters.
func (c *Channel) Send(msg any) {
	ctx := context.Background()
	if err := c.TrySend(msg); err != nil {
		if errors.Is(err, ErrNotConnected) {
			c.log.Debug(ctx, "send dropped: not connected")
			return
		}
		c.log.Warn(ctx, "send failed", logging.Err(err))
	}
}

// TrySend is Send with the outcome reported.
func (c *Channel) TrySend(msg any) error {
	conn := c.current()
	if conn == nil {
		return ErrNotConnected
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("realtime: encode message: %w", err)
	}
	return conn.write(data, c.cfg.WriteWait)
}

func (c *Channel) State() State {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.state
}

// ConnID returns the id of the open connection, or "" if there is none.
func (c *Channel) ConnID() string {
	if conn := c.current(); conn != nil {
		return conn.id
	}
	return ""
}

func (c *Channel) current() *connection {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.conn
}

func (c *Channel) setState(s State) {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	c.state = s
}

// closeCurrent detaches and closes the current connection and waits for its
// read goroutine to exit. Callers hold c.mu.
func (c *Channel) closeCurrent(ctx context.Context, next State) {
	c.connMu.Lock()
	conn := c.conn
	c.conn = nil
	c.state = next
	c.connMu.Unlock()

	if conn == nil {
		return
	}
	conn.close(c.cfg.WriteWait)
	<-conn.done
	conn.log.Info(ctx, "disconnected")
}

func (c *Channel) readLoop(conn *connection) {
	defer close(conn.done)

	ws := conn.ws
	if c.cfg.MaxMessageSize > 0 {
		ws.SetReadLimit(c.cfg.MaxMessageSize)
	}
	if c.cfg.PongWait > 0 {
		_ = ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		})
	}

	ctx := context.Background()
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			c.lost(conn, err)
			return
		}
		if c.cfg.PongWait > 0 {
			_ = ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		}
		if !json.Valid(data) {
			conn.log.Warn(ctx, "dropping inbound frame", logging.Err(ErrMalformedFrame), "size", len(data))
			continue
		}
		conn.dispatch(Frame(data))
	}
}

// lost handles the end of the read loop. Closes initiated by Connect or
// Disconnect are expected; anything else marks the channel Closed and
// fires the drop hook.
func (c *Channel) lost(conn *connection, err error) {
	ctx := context.Background()
	if !conn.closed.CompareAndSwap(false, true) {
		conn.log.Debug(ctx, "read loop stopped")
		return
	}
	_ = conn.ws.Close()

	c.connMu.Lock()
	current := c.conn == conn
	if current {
		c.conn = nil
		c.state = StateClosed
	}
	hook := c.onDrop
	c.connMu.Unlock()

	if !current {
		return
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		conn.log.Info(ctx, "connection closed by server", logging.Err(err))
	} else {
		conn.log.Warn(ctx, "connection lost", logging.Err(err))
	}
	if hook != nil {
		hook(err)
	}
}

func (c *Channel) pingLoop(conn *connection) {
	if c.cfg.PingPeriod <= 0 {
		return
	}
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-conn.done:
			return
		case <-ticker.C:
			if err := conn.ws.WriteControl(websocket.PingMessage, nil, deadline(c.cfg.WriteWait)); err != nil {
				conn.log.Debug(context.Background(), "ping failed", logging.Err(err))
				return
			}
		}
	}
}

// connection is one dialed websocket and its goroutines.
type connection struct {
	id      string
	ws      *websocket.Conn
	handler Handler
	log     logging.Logger

	writeMu sync.Mutex

	// dispatchMu is held while the handler runs; close takes it so that no
	// handler call starts after close returns.
	dispatchMu sync.Mutex
	closed     atomic.Bool

	done chan struct{}
}

func (conn *connection) dispatch(f Frame) {
	conn.dispatchMu.Lock()
	defer conn.dispatchMu.Unlock()
	if conn.closed.Load() || conn.handler == nil {
		return
	}
	conn.handler(f)
}

func (conn *connection) write(data []byte, wait time.Duration) error {
	conn.writeMu.Lock()
	defer conn.writeMu.Unlock()

	if conn.closed.Load() {
		return ErrNotConnected
	}
	_ = conn.ws.SetWriteDeadline(deadline(wait))
	if err := conn.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("realtime: write: %w", err)
	}
	return nil
}

func (conn *connection) close(wait time.Duration) {
	conn.dispatchMu.Lock()
	conn.closed.Store(true)
	conn.dispatchMu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.ws.WriteControl(websocket.CloseMessage, msg, deadline(wait))
	_ = conn.ws.Close()
}

// deadline returns now+wait, or the zero time (no deadline) when wait is 0.
func deadline(wait time.Duration) time.Time {
	if wait <= 0 {
		return time.Time{}
	}
	return time.Now().Add(wait)
}
