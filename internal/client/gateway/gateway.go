package gateway

import (
	"context"

	"github.com/dmitrijs2005/gochat/internal/client/models"
)

type Gateway interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*models.RawProfile, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.RawProfile, error)
}

// TokenSource returns the bearer token to attach, if any.
type TokenSource func(ctx context.Context) (string, bool)
