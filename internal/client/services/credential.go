package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// credentialExpired reports whether token is a JWT whose exp claim lies in
// the past. Opaque tokens and JWTs without exp are never considered expired
// here; the server stays the authority on those.
//
// The signature is not verified: the client has no key and only uses the
// claim to avoid a round-trip that is bound to fail.
func credentialExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
