// Package common contains constants shared by the GoChat client packages.
package common

const (
	// VaultService and VaultAccount identify the single credential slot in
	// the OS secure storage.
	VaultService = "GoChat"
	VaultAccount = "userToken"

	// SessionCookieName is the cookie the server sets on login in the
	// cookie-based auth mode.
	SessionCookieName = "token"
)

// AuthMode selects how the client proves its identity to the server.
type AuthMode string

const (
	// AuthModeToken: login returns a bearer token kept in the vault and
	// attached to every request.
	AuthModeToken AuthMode = "token"
	// AuthModeCookie: the server keeps the session in an HTTP-only cookie.
	AuthModeCookie AuthMode = "cookie"
)

// Valid reports whether m is a known mode.
func (m AuthMode) Valid() bool {
	return m == AuthModeToken || m == AuthModeCookie
}
