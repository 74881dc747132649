// Package cli provides the interactive GoChat terminal client.
//
// It wires configuration, the credential vault, the HTTP session gateway,
// the session controller and the realtime channel, and runs a REPL in place
// of the desktop UI. Typical flow: restore the previous session, open the
// realtime channel when authenticated, start a background session watcher,
// then execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - Show and update the profile
//   - Connect / Disconnect / Send on the realtime channel, with inbound
//     frames printed as they arrive
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartSessionWatcher, and runREPL for details.
package cli
