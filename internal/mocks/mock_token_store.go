package mocks

import (
	"context"
	"sync"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// MockTokenStore implements domain.TokenStore for testing. Without
// overrides it behaves as an in-memory single-slot store and records calls.
type MockTokenStore struct {
	SaveFunc   func(ctx context.Context, token string) error
	LoadFunc   func(ctx context.Context) (string, error)
	DeleteFunc func(ctx context.Context) error

	mu          sync.Mutex
	stored      string
	hasToken    bool
	SaveCalls   int
	DeleteCalls int
}

// NewMockTokenStore creates a new MockTokenStore with default behaviors
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

// Seed preloads the stored token.
func (m *MockTokenStore) Seed(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = token
	m.hasToken = true
}

// Save persists the token
func (m *MockTokenStore) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	m.SaveCalls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = token
	m.hasToken = true
	return nil
}

// Load reads the token
func (m *MockTokenStore) Load(ctx context.Context) (string, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasToken {
		return "", domain.ErrTokenNotFound
	}
	return m.stored, nil
}

// Delete removes the token
func (m *MockTokenStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = ""
	m.hasToken = false
	return nil
}

// Saves returns the number of Save calls.
func (m *MockTokenStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveCalls
}

// Deletes returns the number of Delete calls.
func (m *MockTokenStore) Deletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DeleteCalls
}

// Compile-time interface compliance verification
var _ domain.TokenStore = (*MockTokenStore)(nil)
