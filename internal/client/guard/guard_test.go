package guard

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gochat/internal/logging"
	"github.com/stretchr/testify/assert"
)

type fakeSession struct {
	known         bool
	authenticated bool
	// result is what Initialize establishes.
	result bool

	initCalls int
}

func (f *fakeSession) Known() bool           { return f.known }
func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }

func (f *fakeSession) Initialize(context.Context) {
	f.initCalls++
	f.known = true
	f.authenticated = f.result
}

func TestAuthorize(t *testing.T) {
	chat := Route{Name: RouteChat, RequiresAuth: true}
	auth := Route{Name: RouteAuth}

	tests := []struct {
		name      string
		session   *fakeSession
		route     Route
		want      Decision
		wantInits int
	}{
		{
			name:      "unknown status is initialized first",
			session:   &fakeSession{result: true},
			route:     chat,
			want:      Decision{Allow: true},
			wantInits: 1,
		},
		{
			name:      "unknown status resolving to unauthenticated",
			session:   &fakeSession{},
			route:     chat,
			want:      Decision{Redirect: RouteAuth},
			wantInits: 1,
		},
		{
			name:    "known authenticated",
			session: &fakeSession{known: true, authenticated: true},
			route:   chat,
			want:    Decision{Allow: true},
		},
		{
			name:    "known unauthenticated on public route",
			session: &fakeSession{known: true},
			route:   auth,
			want:    Decision{Allow: true},
		},
		{
			name:    "unregistered route redirects",
			session: &fakeSession{known: true, authenticated: true},
			route:   Route{Name: "settings"},
			want:    Decision{Redirect: RouteAuth},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.session, logging.Discard())
			assert.Equal(t, tt.want, g.Authorize(context.Background(), tt.route))
			assert.Equal(t, tt.wantInits, tt.session.initCalls)
		})
	}
}

func TestAuthorize_InitializesOnce(t *testing.T) {
	s := &fakeSession{result: true}
	g := New(s, logging.Discard())

	g.AuthorizeName(context.Background(), RouteChat)
	g.AuthorizeName(context.Background(), RouteAuth)
	assert.Equal(t, 1, s.initCalls)
}

func TestLookup(t *testing.T) {
	g := New(&fakeSession{}, logging.Discard(), Route{Name: "inbox", RequiresAuth: true})

	r, ok := g.Lookup("inbox")
	assert.True(t, ok)
	assert.True(t, r.RequiresAuth)

	_, ok = g.Lookup(RouteChat)
	assert.False(t, ok)
}
