// Package models defines the data shapes exchanged between the client's
// session, gateway and shell layers.
package models

// Session is the client's current authentication status.
//
// Invariant: User != nil if and only if IsAuthenticated.
type Session struct {
	IsAuthenticated bool
	User            *UserProfile
}
