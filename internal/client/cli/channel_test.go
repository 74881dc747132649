package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	silencePrintln(t)
	tr := &fakeTransport{state: realtime.StateOpen}
	a := newTestApp(loggedIn(&models.UserProfile{Username: "ada"}), tr)

	require.NoError(t, a.Send(context.Background(), []string{`{"text":`, `"hi"}`}))
	require.Len(t, tr.sent, 1)
	assert.Equal(t, realtime.Frame(`{"text": "hi"}`), tr.sent[0])
}

func TestSend_InvalidJSON(t *testing.T) {
	out := captureOutput(t)
	tr := &fakeTransport{state: realtime.StateOpen}
	a := newTestApp(loggedIn(&models.UserProfile{Username: "ada"}), tr)

	require.NoError(t, a.Send(context.Background(), []string{"hello"}))
	assert.Empty(t, tr.sent)
	assert.Contains(t, out.String(), "Not a valid JSON message")
}

func TestSend_NotConnected(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(loggedIn(&models.UserProfile{Username: "ada"}), &fakeTransport{})

	err := a.Send(context.Background(), []string{`{}`})
	assert.ErrorIs(t, err, realtime.ErrNotConnected)
	assert.Contains(t, out.String(), "Not connected")
}

func TestSend_WriteFailure(t *testing.T) {
	out := captureOutput(t)
	tr := &fakeTransport{state: realtime.StateOpen, sendErr: errors.New("broken pipe")}
	a := newTestApp(loggedIn(&models.UserProfile{Username: "ada"}), tr)

	require.Error(t, a.Send(context.Background(), []string{`{}`}))
	assert.Contains(t, out.String(), "Send failed: broken pipe")
}

func TestSend_ReadsMultilineWhenNoArgs(t *testing.T) {
	silencePrintln(t)
	orig := getMultiline
	t.Cleanup(func() { getMultiline = orig })
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) {
		return "{\n\"a\": 1\n}", nil
	}

	tr := &fakeTransport{state: realtime.StateOpen}
	a := newTestApp(loggedIn(&models.UserProfile{Username: "ada"}), tr)

	require.NoError(t, a.Send(context.Background(), nil))
	require.Len(t, tr.sent, 1)
	assert.JSONEq(t, `{"a":1}`, string(tr.sent[0].(realtime.Frame)))
}

func TestConnectDisconnect(t *testing.T) {
	out := captureOutput(t)
	tr := &fakeTransport{}
	a := newTestApp(loggedIn(&models.UserProfile{Username: "ada"}), tr)

	require.NoError(t, a.Connect(context.Background()))
	assert.Equal(t, realtime.StateOpen, tr.State())

	require.NoError(t, a.Disconnect(context.Background()))
	assert.Equal(t, realtime.StateIdle, tr.State())
	assert.Equal(t, "Connected\nDisconnected", out.String())
}

func TestConnect_RequiresSession(t *testing.T) {
	out := captureOutput(t)
	tr := &fakeTransport{}
	a := newTestApp(&fakeSession{}, tr)

	require.NoError(t, a.Connect(context.Background()))
	assert.Zero(t, tr.connects)
	assert.Contains(t, out.String(), "Please log in first")
}

func TestStatus(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(loggedIn(&models.UserProfile{Username: "ada"}), &fakeTransport{state: realtime.StateOpen})
	a.setMode(ModeOnline)

	require.NoError(t, a.Status(context.Background()))
	assert.Equal(t, "user: ada, auth mode: cookie, channel: open, mode: online", out.String())
}

func TestOnFramePrintsInbound(t *testing.T) {
	out := captureOutput(t)
	tr := &fakeTransport{}
	a := newTestApp(loggedIn(&models.UserProfile{Username: "ada"}), tr)
	require.NoError(t, a.Connect(context.Background()))

	tr.handler(realtime.Frame(`{"from":"bob"}`))
	assert.Contains(t, out.String(), `<< {"from":"bob"}`)
}
