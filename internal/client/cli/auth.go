package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/gochat/internal/client/gateway"
	"github.com/dmitrijs2005/gochat/internal/client/guard"
	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, username and password and creates the
// account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := models.RegisterRequest{Email: email, Username: username, Password: string(password)}
	if err := a.session.Register(ctx, req); err != nil {
		printlnFn("Registration failed:", describe(err))
		return err
	}

	printlnFn("Registered. You can log in now.")
	return nil
}

// Login prompts for credentials and authenticates. On success the realtime
// channel is opened.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds := models.Credentials{Email: email, Password: string(password)}
	if err := a.session.Login(ctx, creds); err != nil {
		printlnFn("Login failed:", describe(err))
		return err
	}
	a.setMode(ModeOnline)

	s := a.session.Session()
	printlnFn("Welcome,", s.User.DisplayName())

	return a.openChannel(ctx)
}

// Logout closes the realtime channel and ends the session. It cannot fail
// locally.
func (a *App) Logout(ctx context.Context) error {
	a.channel.Disconnect()
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// openChannel connects the realtime channel if the chat route is allowed.
func (a *App) openChannel(ctx context.Context) error {
	if d := a.guard.AuthorizeName(ctx, guard.RouteChat); !d.Allow {
		printlnFn("Please log in first")
		return nil
	}
	if err := a.channel.Connect(ctx, a.realtimeURL(), a.onFrame); err != nil {
		printlnFn("Realtime channel unavailable:", err)
		return err
	}
	return nil
}

// describe returns the message to show for err: the server's own message
// for rejections, the error text otherwise.
func describe(err error) string {
	var rej *gateway.ServerRejection
	if errors.As(err, &rej) && rej.Body.Error != "" {
		return rej.Body.Error
	}
	if errors.Is(err, gateway.ErrUnavailable) {
		return "server unavailable"
	}
	return err.Error()
}
