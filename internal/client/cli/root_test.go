package cli

import (
	"testing"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/realtime"
	"github.com/stretchr/testify/assert"
)

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name    string
		session *fakeSession
		state   realtime.State
		mode    Mode
		want    string
	}{
		{name: "signed out", session: &fakeSession{}, want: " (ws:idle)"},
		{name: "signed in and connected", session: loggedIn(&models.UserProfile{Username: "alice"}), state: realtime.StateOpen, mode: ModeOnline, want: " (alice ws:open)"},
		{name: "offline", session: loggedIn(&models.UserProfile{Email: "a@x"}), state: realtime.StateClosed, mode: ModeOffline, want: " (a@x ws:closed offline)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(tt.session, &fakeTransport{state: tt.state})
			a.setMode(tt.mode)
			assert.Equal(t, tt.want, a.getStatus())
		})
	}
}
