package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gochat/internal/client/config"
	"github.com/dmitrijs2005/gochat/internal/client/guard"
	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/realtime"
	"github.com/dmitrijs2005/gochat/internal/logging"
)

// ---- session ----

type fakeSession struct {
	mu sync.Mutex

	known   bool
	session models.Session

	// results
	loginErr    error
	registerErr error
	updateErr   error
	refreshErr  error
	// loginUser is the profile Login establishes on success.
	loginUser *models.UserProfile

	// captured
	calls      []string
	lastCreds  models.Credentials
	lastReg    models.RegisterRequest
	lastUpdate models.UpdateProfileRequest
}

func (f *fakeSession) record(c string) { f.calls = append(f.calls, c) }

func (f *fakeSession) Initialize(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("initialize")
	f.known = true
}

func (f *fakeSession) Refresh(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("refresh")
	return f.refreshErr
}

func (f *fakeSession) Register(_ context.Context, req models.RegisterRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("register")
	f.lastReg = req
	return f.registerErr
}

func (f *fakeSession) Login(_ context.Context, creds models.Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("login")
	f.lastCreds = creds
	if f.loginErr != nil {
		return f.loginErr
	}
	f.known = true
	f.session = models.Session{IsAuthenticated: true, User: f.loginUser}
	return nil
}

func (f *fakeSession) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("logout")
	f.known = true
	f.session = models.Session{}
}

func (f *fakeSession) UpdateProfile(_ context.Context, req models.UpdateProfileRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update")
	f.lastUpdate = req
	return f.updateErr
}

func (f *fakeSession) Session() models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.IsAuthenticated
}

func (f *fakeSession) Known() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.known
}

func (f *fakeSession) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func loggedIn(user *models.UserProfile) *fakeSession {
	return &fakeSession{known: true, session: models.Session{IsAuthenticated: true, User: user}}
}

// ---- transport ----

type fakeTransport struct {
	mu sync.Mutex

	state      realtime.State
	connectErr error
	sendErr    error

	connects    int
	disconnects int
	lastURL     string
	handler     realtime.Handler
	sent        []any
}

var _ realtime.Transport = (*fakeTransport)(nil)

func (f *fakeTransport) Connect(_ context.Context, url string, h realtime.Handler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	f.lastURL = url
	if f.connectErr != nil {
		f.state = realtime.StateClosed
		return f.connectErr
	}
	f.handler = h
	f.state = realtime.StateOpen
	return nil
}

func (f *fakeTransport) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	f.state = realtime.StateIdle
}

func (f *fakeTransport) Send(msg any) { _ = f.TrySend(msg) }

func (f *fakeTransport) TrySend(msg any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != realtime.StateOpen {
		return realtime.ErrNotConnected
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeTransport) State() realtime.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ---- app & io ----

func newTestApp(s *fakeSession, tr *fakeTransport) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:  cfg,
		session: s,
		channel: tr,
		guard:   guard.New(s, logging.Discard()),
		log:     logging.Discard(),
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

// output captures printlnFn for the duration of a test.
type output struct {
	mu    sync.Mutex
	lines []string
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		line := strings.TrimSuffix(fmt.Sprintln(a...), "\n")
		o.mu.Lock()
		o.lines = append(o.lines, line)
		o.mu.Unlock()
		return len(line), nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return o
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

// stubInputs replaces the prompt helpers: answers are returned in order by
// getSimpleText, password by getPassword.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
