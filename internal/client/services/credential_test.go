package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"}).
		SignedString([]byte("k"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "opaque", token: "not-a-jwt", want: false},
		{name: "empty", token: "", want: false},
		{name: "no exp", token: noExp, want: false},
		{name: "expired", token: signedToken(t, now.Add(-time.Minute)), want: true},
		{name: "valid", token: signedToken(t, now.Add(time.Minute)), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, credentialExpired(tt.token, now))
		})
	}
}
