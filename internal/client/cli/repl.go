package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
// It is also called from the realtime read goroutine, so stubs must be safe
// for concurrent use.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Send(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

var _ execIface = (*App)(nil)

// runREPL starts a simple read–eval–print loop for the GoChat shell.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help               show available commands
//	  - register           create an account
//	  - login              authenticate and open the realtime channel
//	  - status             show session and channel state
//	  - exit | quit        leave the program
//
//	Logged in:
//	  - profile | whoami   show the current profile
//	  - update             edit first name, last name, avatar
//	  - connect            (re)open the realtime channel
//	  - disconnect         close the realtime channel
//	  - send [json]        send a JSON message
//	  - status             show session and channel state
//	  - logout             close the channel and log out
//	  - exit | quit        leave the program
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
//
// Command handlers prompt through the same reader, so it must not be wrapped
// in another buffering reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gochat%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, update, connect, disconnect, send [json], status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, status, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "profile", "whoami", "update", "connect", "disconnect", "send":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			switch cmd {
			case "profile", "whoami":
				_ = a.Profile(ctx)
			case "update":
				_ = a.UpdateProfile(ctx)
			case "connect":
				_ = a.Connect(ctx)
			case "disconnect":
				_ = a.Disconnect(ctx)
			case "send":
				_ = a.Send(ctx, args)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
