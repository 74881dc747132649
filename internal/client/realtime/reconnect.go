package realtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gochat/internal/logging"
	"github.com/sethvargo/go-retry"
)

// Policy bounds the reconnect loop.
type Policy struct {
	// MaxAttempts is the number of dials per outage. Zero means unlimited.
	MaxAttempts   uint64
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	JitterPercent uint64
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:   5,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		JitterPercent: 20,
	}
}

func (p Policy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultPolicy().BaseDelay
	}
	b := retry.NewExponential(base)
	if p.MaxDelay > 0 {
		b = retry.WithCappedDuration(p.MaxDelay, b)
	}
	if p.JitterPercent > 0 {
		b = retry.WithJitterPercent(p.JitterPercent, b)
	}
	if p.MaxAttempts > 0 {
		b = retry.WithMaxRetries(p.MaxAttempts-1, b)
	}
	return b
}

// Reconnector wraps a Channel and re-dials the last URL when the
// connection drops unexpectedly. Disconnect and Connect cancel a pending
// reconnect loop.
type Reconnector struct {
	ch     *Channel
	policy Policy
	log    logging.Logger

	// gen changes on every explicit Connect or Disconnect; a loop started
	// under an older generation stops at its next attempt.
	gen atomic.Uint64

	loopMu sync.Mutex
	cancel context.CancelFunc

	// mu is held across every dial so that an explicit call never
	// interleaves with a reconnect attempt.
	mu      sync.Mutex
	url     string
	handler Handler

	onGiveUp func(error)
}

func NewReconnector(ch *Channel, p Policy, log logging.Logger) *Reconnector {
	r := &Reconnector{
		ch:     ch,
		policy: p,
		log:    log.With("component", "reconnector"),
	}
	ch.OnDrop(r.dropped)
	return r
}

// OnGiveUp registers fn to be called when a reconnect loop exhausts its
// attempts.
func (r *Reconnector) OnGiveUp(fn func(error)) {
	r.loopMu.Lock()
	defer r.loopMu.Unlock()
	r.onGiveUp = fn
}

func (r *Reconnector) Connect(ctx context.Context, url string, h Handler) error {
	r.stopLoop()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.url = url
	r.handler = h
	return r.ch.Connect(ctx, url, h)
}

func (r *Reconnector) Disconnect() {
	r.stopLoop()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.url = ""
	r.handler = nil
	r.ch.Disconnect()
}

func (r *Reconnector) Send(msg any)          { r.ch.Send(msg) }
func (r *Reconnector) TrySend(msg any) error { return r.ch.TrySend(msg) }
func (r *Reconnector) State() State          { return r.ch.State() }

func (r *Reconnector) stopLoop() {
	r.loopMu.Lock()
	defer r.loopMu.Unlock()
	r.gen.Add(1)
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Reconnector) dropped(cause error) {
	r.loopMu.Lock()
	defer r.loopMu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	gen := r.gen.Load()

	r.log.Info(ctx, "connection dropped, reconnecting", logging.Err(cause))
	go r.loop(ctx, gen, r.onGiveUp)
}

var errSuperseded = errors.New("reconnect superseded")

func (r *Reconnector) loop(ctx context.Context, gen uint64, onGiveUp func(error)) {
	attempt := 0
	err := retry.Do(ctx, r.policy.backoff(), func(ctx context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.gen.Load() != gen || r.url == "" {
			return errSuperseded
		}
		if r.ch.State() == StateOpen {
			return nil
		}
		attempt++
		if err := r.ch.Connect(ctx, r.url, r.handler); err != nil {
			r.log.Debug(ctx, "reconnect attempt failed", "attempt", attempt, logging.Err(err))
			return retry.RetryableError(err)
		}
		r.log.Info(ctx, "reconnected", "attempt", attempt)
		return nil
	})

	switch {
	case err == nil, errors.Is(err, errSuperseded), errors.Is(err, context.Canceled):
		return
	default:
		r.log.Error(ctx, "reconnect gave up", "attempts", attempt, logging.Err(err))
		if onGiveUp != nil {
			onGiveUp(err)
		}
	}
}
