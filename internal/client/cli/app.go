package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gochat/internal/client/config"
	"github.com/dmitrijs2005/gochat/internal/client/gateway"
	"github.com/dmitrijs2005/gochat/internal/client/guard"
	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/realtime"
	"github.com/dmitrijs2005/gochat/internal/client/services"
	"github.com/dmitrijs2005/gochat/internal/client/vault"
	"github.com/dmitrijs2005/gochat/internal/common"
	"github.com/dmitrijs2005/gochat/internal/logging"
	"golang.org/x/net/publicsuffix"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// sessionService is the part of services.SessionController the shell uses.
type sessionService interface {
	Initialize(ctx context.Context)
	Refresh(ctx context.Context) error
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, creds models.Credentials) error
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) error
	Session() models.Session
	IsAuthenticated() bool
	Known() bool
}

var _ sessionService = (*services.SessionController)(nil)

type App struct {
	config  *config.Config
	session sessionService
	channel realtime.Transport
	guard   *guard.Guard
	log     logging.Logger
	reader  *bufio.Reader

	// mode is written by the session watcher and read by the REPL.
	modeMu sync.RWMutex
	mode   Mode
}

// NewApp builds every component from c. Nothing touches the network here.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	var v vault.Vault
	switch c.Vault.Backend {
	case config.VaultMemory:
		v = vault.NewMemoryVault()
	default:
		v = vault.NewKeyringVault(c.Vault.Service, c.Vault.Account, log)
	}

	var (
		gwOpts = []gateway.Option{gateway.WithLogger(log)}
		chOpts []realtime.Option
	)
	switch c.AuthMode {
	case common.AuthModeCookie:
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		gwOpts = append(gwOpts, gateway.WithCookieJar(jar))
		chOpts = append(chOpts, realtime.WithCookieJar(jar))
	case common.AuthModeToken:
		gwOpts = append(gwOpts, gateway.WithTokenSource(v.Get))
		chOpts = append(chOpts, realtime.WithHeader(bearerHeader(v)))
	default:
		return nil, fmt.Errorf("unknown auth mode %q", c.AuthMode)
	}

	gw := gateway.NewHTTPGateway(c.APIBaseURL, c.RequestTimeout, gwOpts...)
	ctrl := services.NewSessionController(gw, v, c.AuthMode, log)

	rc := realtime.NewReconnector(realtime.NewChannel(c.Realtime, log, chOpts...), c.Reconnect, log)
	rc.OnGiveUp(func(err error) {
		printlnFn("Realtime connection lost:", err)
	})

	return &App{
		config:  c,
		session: ctrl,
		channel: rc,
		guard:   guard.New(ctrl, log),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// bearerHeader authenticates the websocket handshake with the stored token.
func bearerHeader(v vault.Vault) func(ctx context.Context) http.Header {
	return func(ctx context.Context) http.Header {
		token, ok := v.Get(ctx)
		if !ok {
			return nil
		}
		return http.Header{"Authorization": []string{"Bearer " + token}}
	}
}

// Mode reports the connectivity observed by the last session check.
func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.channel.Disconnect()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// StartSessionWatcher re-validates the session every interval until ctx is
// done. When the server no longer recognizes the session the realtime
// channel is closed; when the server is unreachable the app switches to
// offline mode and keeps the session.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkSession(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkSession(ctx context.Context) {
	if !a.session.IsAuthenticated() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, a.requestTimeout())
	err := a.session.Refresh(ctx)
	cancel()

	switch {
	case err == nil:
		a.setMode(ModeOnline)
	case errors.Is(err, common.ErrSessionAbsent):
		a.channel.Disconnect()
		a.setMode(ModeOnline)
		printlnFn("Session expired, please log in again")
	case errors.Is(err, gateway.ErrUnavailable):
		a.setMode(ModeOffline)
	default:
		a.log.Warn(ctx, "session check failed", logging.Err(err))
	}
}

func (a *App) requestTimeout() time.Duration {
	if a.config != nil && a.config.RequestTimeout > 0 {
		return a.config.RequestTimeout
	}
	return 10 * time.Second
}

func (a *App) realtimeURL() string {
	if a.config != nil {
		return a.config.RealtimeURL
	}
	return ""
}
