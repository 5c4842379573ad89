package auth

import (
	"context"
	"sync"
)

// TokenStore persists the bearer credential. Only Session and the route
// guard write it; everything else reads session state from the store.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryTokens is a TokenStore that lives only as long as the process.
type MemoryTokens struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokens returns a store holding token.
func NewMemoryTokens(token string) *MemoryTokens {
	return &MemoryTokens{token: token}
}

func (m *MemoryTokens) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokens) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokens) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
