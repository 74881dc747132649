// Package vault keeps the session credential in OS-managed secure storage.
//
// There is exactly one credential slot. Read and delete failures degrade to
// "no credential"; write failures are reported, because a login whose token
// could not be stored must not look successful.
package vault

import (
	"context"
	"fmt"
)

// Vault persists an opaque secret.
type Vault interface {
	// Save stores secret, replacing any previous one.
	Save(ctx context.Context, secret string) error
	// Get returns the stored secret and true, or "" and false when nothing
	// is stored or the storage could not be read.
	Get(ctx context.Context) (string, bool)
	// Delete removes the stored secret. It is a no-op when nothing is stored.
	Delete(ctx context.Context)
}

// StorageError is returned when the secure storage rejects a write.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("secure storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
