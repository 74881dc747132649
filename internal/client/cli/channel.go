package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gochat/internal/client/realtime"
)

// Connect opens (or reopens) the realtime channel.
func (a *App) Connect(ctx context.Context) error {
	if err := a.openChannel(ctx); err != nil {
		return err
	}
	if a.channel.State() == realtime.StateOpen {
		printlnFn("Connected")
	}
	return nil
}

func (a *App) Disconnect(_ context.Context) error {
	a.channel.Disconnect()
	printlnFn("Disconnected")
	return nil
}

// Send writes one JSON message to the channel. Without arguments the
// message is read from the following lines.
func (a *App) Send(_ context.Context, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		var err error
		if text, err = getMultiline(a.reader, "Enter JSON message", os.Stdout); err != nil {
			return err
		}
	}
	if !json.Valid([]byte(text)) {
		printlnFn("Not a valid JSON message")
		return nil
	}

	err := a.channel.TrySend(realtime.Frame(text))
	if errors.Is(err, realtime.ErrNotConnected) {
		printlnFn("Not connected (use 'connect')")
		return err
	}
	if err != nil {
		printlnFn("Send failed:", err)
	}
	return err
}

// Status prints the session and channel state.
func (a *App) Status(_ context.Context) error {
	s := a.session.Session()
	user := "-"
	if s.IsAuthenticated {
		user = s.User.DisplayName()
	}
	printlnFn(fmt.Sprintf("user: %s, auth mode: %s, channel: %s, mode: %s",
		user, a.authMode(), a.channel.State(), a.modeOrUnknown()))
	return nil
}

// onFrame prints inbound frames as they arrive.
func (a *App) onFrame(f realtime.Frame) {
	printlnFn("<<", f.String())
}

func (a *App) authMode() string {
	if a.config == nil {
		return "-"
	}
	return string(a.config.AuthMode)
}

func (a *App) modeOrUnknown() string {
	mode := a.Mode()
	if mode == "" {
		return "unknown"
	}
	return string(mode)
}
