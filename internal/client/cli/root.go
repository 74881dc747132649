package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gochat/internal/client/guard"
)

func (a *App) getStatus() string {
	s := ""
	if sess := a.session.Session(); sess.IsAuthenticated {
		s = sess.User.DisplayName() + " "
	}
	if a.channel != nil {
		s += "ws:" + a.channel.State().String()
	}
	if a.Mode() == ModeOffline {
		s += " offline"
	}
	if s != "" {
		s = fmt.Sprintf(" (%s)", s)
	}
	return s
}

// Root restores the previous session, opens the realtime channel when the
// chat route is allowed, starts the session watcher and runs the REPL
// until the user exits or ctx is done.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to GoChat (type 'help' for commands)")

	if d := a.guard.AuthorizeName(ctx, guard.RouteChat); d.Allow {
		printlnFn("Signed in as", a.session.Session().User.DisplayName())
		_ = a.openChannel(ctx)
	} else {
		printlnFn("Not signed in. Use 'login' or 'register'.")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartSessionWatcher(watchCtx, a.config.SessionCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
