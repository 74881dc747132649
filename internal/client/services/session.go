// Package services contains the application services of the GoChat client.
// This file defines the session controller: the authentication state
// machine driven by startup, login, logout and profile updates.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gochat/internal/client/gateway"
	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/vault"
	"github.com/dmitrijs2005/gochat/internal/common"
	"github.com/dmitrijs2005/gochat/internal/logging"
)

var (
	ErrMissingToken     = errors.New("login response carries no token")
	ErrInvalidProfile   = errors.New("invalid profile")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// SessionController owns the client's Session value.
//
// States: Unauthenticated (initial) and Authenticated(user). Operations that
// change the session are serialized per controller, so a Login issued while
// Initialize is in flight waits for it instead of racing it.
//
// In token mode the credential lives in the vault; in cookie mode the vault
// is not used and may be nil.
type SessionController struct {
	gateway gateway.Gateway
	vault   vault.Vault
	mode    common.AuthMode
	log     logging.Logger
	now     func() time.Time

	// opMu is held for the whole duration of a session-mutating operation.
	opMu sync.Mutex

	mu      sync.RWMutex
	session models.Session
	known   bool
}

func NewSessionController(gw gateway.Gateway, v vault.Vault, mode common.AuthMode, log logging.Logger) *SessionController {
	return &SessionController{
		gateway: gw,
		vault:   v,
		mode:    mode,
		log:     log.With("component", "session", "auth_mode", string(mode)),
		now:     time.Now,
	}
}

// Session returns a snapshot of the current session.
func (c *SessionController) Session() models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.Session{
		IsAuthenticated: c.session.IsAuthenticated,
		User:            c.session.User.Clone(),
	}
}

func (c *SessionController) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.IsAuthenticated
}

// Known reports whether the authentication status has been established by
// Initialize, Login or Logout.
func (c *SessionController) Known() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.known
}

// Initialize establishes the authentication status at startup (or on
// re-validation). It never fails: any problem ends in Unauthenticated.
func (c *SessionController) Initialize(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	user := c.restore(ctx)
	c.set(user)
	if user != nil {
		c.log.Info(ctx, "session restored", "user_id", user.UserID)
	}
}

func (c *SessionController) restore(ctx context.Context) *models.UserProfile {
	if c.tokenMode() {
		token, ok := c.vault.Get(ctx)
		if !ok {
			c.log.Debug(ctx, "no stored credential")
			return nil
		}
		if credentialExpired(token, c.now()) {
			c.log.Debug(ctx, "stored credential expired")
			c.vault.Delete(ctx)
			return nil
		}
	}

	raw, err := c.gateway.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, common.ErrSessionAbsent) {
			c.log.Debug(ctx, "no active session", logging.Err(err))
			if c.tokenMode() {
				c.vault.Delete(ctx)
			}
		} else {
			c.log.Warn(ctx, "session initialization failed", logging.Err(err))
		}
		return nil
	}

	user := NormalizeProfile(raw)
	if !validProfile(user) {
		c.log.Warn(ctx, "server returned a profile without identity")
		return nil
	}
	return user
}

// Refresh re-reads the profile of an authenticated session. A session the
// server no longer recognizes ends here (the error matches
// common.ErrSessionAbsent); any other failure leaves the session as it is.
func (c *SessionController) Refresh(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	raw, err := c.gateway.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, common.ErrSessionAbsent) {
			c.log.Info(ctx, "session ended by server")
			if c.tokenMode() {
				c.vault.Delete(ctx)
			}
			c.set(nil)
		}
		return fmt.Errorf("refresh: %w", err)
	}

	user := NormalizeProfile(raw)
	if !validProfile(user) {
		c.log.Warn(ctx, "refresh ignored: profile without identity")
		return ErrInvalidProfile
	}
	c.set(user)
	return nil
}

// Register creates an account. It does not log the user in.
func (c *SessionController) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := c.gateway.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Login authenticates with creds. On failure the session is left as it was
// and the error is returned for display.
func (c *SessionController) Login(ctx context.Context, creds models.Credentials) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	resp, err := c.gateway.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var (
		prevToken string
		hadToken  bool
	)
	if c.tokenMode() {
		if resp.Token == "" {
			return fmt.Errorf("login: %w", ErrMissingToken)
		}
		prevToken, hadToken = c.vault.Get(ctx)
		if err := c.vault.Save(ctx, resp.Token); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	user, err := c.profileAfterLogin(ctx, resp)
	if err != nil {
		if c.tokenMode() {
			c.restoreCredential(ctx, prevToken, hadToken)
		}
		return fmt.Errorf("login: %w", err)
	}

	c.set(user)
	c.log.Info(ctx, "logged in", "user_id", user.UserID)
	return nil
}

// restoreCredential puts back the credential that was stored before a failed
// login, so an existing session keeps working.
func (c *SessionController) restoreCredential(ctx context.Context, prev string, had bool) {
	if !had {
		c.vault.Delete(ctx)
		return
	}
	if err := c.vault.Save(ctx, prev); err != nil {
		c.log.Warn(ctx, "could not restore previous credential", logging.Err(err))
	}
}

func (c *SessionController) profileAfterLogin(ctx context.Context, resp *models.LoginResponse) (*models.UserProfile, error) {
	raw := resp.User
	if raw == nil {
		var err error
		if raw, err = c.gateway.GetProfile(ctx); err != nil {
			return nil, err
		}
	}
	user := NormalizeProfile(raw)
	if !validProfile(user) {
		return nil, ErrInvalidProfile
	}
	return user, nil
}

// Logout ends the session. The local state becomes Unauthenticated and the
// credential is removed even when the server call fails.
func (c *SessionController) Logout(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.gateway.Logout(ctx); err != nil {
		c.log.Warn(ctx, "remote logout failed, clearing local session anyway", logging.Err(err))
	}
	if c.tokenMode() {
		c.vault.Delete(ctx)
	}
	c.set(nil)
	c.log.Info(ctx, "logged out")
}

// UpdateUser overlays the fields present in raw onto the current profile.
// The authentication flag never changes. A nil payload, an unauthenticated
// session or a result without identity is rejected and leaves the session
// untouched.
func (c *SessionController) UpdateUser(ctx context.Context, raw *models.RawProfile) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.updateUser(ctx, raw)
}

func (c *SessionController) updateUser(ctx context.Context, raw *models.RawProfile) error {
	if raw == nil {
		c.log.Warn(ctx, "profile update ignored: empty payload")
		return ErrInvalidProfile
	}

	c.mu.RLock()
	current := c.session.User
	c.mu.RUnlock()

	if current == nil {
		c.log.Warn(ctx, "profile update ignored: not authenticated")
		return ErrNotAuthenticated
	}

	updated := MergeProfile(current, raw)
	if !validProfile(updated) {
		c.log.Warn(ctx, "profile update ignored: result has no identity")
		return ErrInvalidProfile
	}

	c.mu.Lock()
	c.session.User = updated
	c.mu.Unlock()
	return nil
}

// UpdateProfile sends req to the server and applies the returned profile.
func (c *SessionController) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	raw, err := c.gateway.UpdateProfile(ctx, req)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	// Servers that answer {"status":"updated"} give back nothing to merge;
	// apply the request itself in that case.
	if raw == nil || *raw == (models.RawProfile{}) {
		raw = &models.RawProfile{FirstName: req.FirstName, LastName: req.LastName, AvatarURL: req.AvatarURL}
	}
	return c.updateUser(ctx, raw)
}

func (c *SessionController) set(user *models.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = models.Session{IsAuthenticated: user != nil, User: user}
	c.known = true
}

func (c *SessionController) tokenMode() bool {
	return c.mode == common.AuthModeToken
}
