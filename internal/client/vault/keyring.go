package vault

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gochat/internal/common"
	"github.com/dmitrijs2005/gochat/internal/logging"
	"github.com/zalando/go-keyring"
)

// KeyringVault stores the credential in the platform keychain (macOS
// Keychain, Windows Credential Manager, Secret Service on Linux).
type KeyringVault struct {
	service string
	account string
	log     logging.Logger
}

// NewKeyringVault returns a vault bound to service/account. Empty values
// fall back to the default GoChat slot.
func NewKeyringVault(service, account string, log logging.Logger) *KeyringVault {
	if service == "" {
		service = common.VaultService
	}
	if account == "" {
		account = common.VaultAccount
	}
	return &KeyringVault{
		service: service,
		account: account,
		log:     log.With("component", "vault", "service", service),
	}
}

func (v *KeyringVault) Save(ctx context.Context, secret string) error {
	err := run(ctx, func() error {
		return keyring.Set(v.service, v.account, secret)
	})
	if err != nil {
		v.log.Error(ctx, "failed to save credential", logging.Err(err))
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

func (v *KeyringVault) Get(ctx context.Context) (string, bool) {
	var secret string
	err := run(ctx, func() error {
		var err error
		secret, err = keyring.Get(v.service, v.account)
		return err
	})
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", false
	case err != nil:
		v.log.Warn(ctx, "failed to read credential, treating as absent", logging.Err(err))
		return "", false
	case secret == "":
		return "", false
	}
	return secret, true
}

func (v *KeyringVault) Delete(ctx context.Context) {
	err := run(ctx, func() error {
		return keyring.Delete(v.service, v.account)
	})
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		v.log.Warn(ctx, "failed to delete credential", logging.Err(err))
	}
}

// run executes a keyring call off the caller's goroutine so a stuck OS
// prompt or D-Bus call cannot outlive ctx.
func run(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
