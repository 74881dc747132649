package vault

import (
	"context"
	"sync"
)

// MemoryVault keeps the credential in process memory. It is meant for
// headless hosts without a secret service and for tests; nothing survives
// a restart.
type MemoryVault struct {
	mu     sync.Mutex
	secret string
	set    bool
}

func NewMemoryVault() *MemoryVault {
	return &MemoryVault{}
}

func (m *MemoryVault) Save(_ context.Context, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secret, m.set = secret, secret != ""
	return nil
}

func (m *MemoryVault) Get(_ context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.secret, m.set
}

func (m *MemoryVault) Delete(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secret, m.set = "", false
}
