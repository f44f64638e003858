package mocks

import (
	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// MockTokenCodec implements domain.TokenCodec for testing
type MockTokenCodec struct {
	DecodeFunc          func(token string) (*domain.TokenClaims, error)
	IsExpiredFunc       func(token string) bool
	ExtractIdentityFunc func(token string) *domain.Identity
}

// NewMockTokenCodec creates a new MockTokenCodec with default behaviors
func NewMockTokenCodec() *MockTokenCodec {
	return &MockTokenCodec{}
}

// Decode parses claims from a token
func (m *MockTokenCodec) Decode(token string) (*domain.TokenClaims, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(token)
	}
	// Default behavior: malformed
	return nil, domain.ErrTokenMalformed
}

// IsExpired reports token expiry
func (m *MockTokenCodec) IsExpired(token string) bool {
	if m.IsExpiredFunc != nil {
		return m.IsExpiredFunc(token)
	}
	// Default behavior: expired (fail closed)
	return true
}

// ExtractIdentity projects claims into an identity
func (m *MockTokenCodec) ExtractIdentity(token string) *domain.Identity {
	if m.ExtractIdentityFunc != nil {
		return m.ExtractIdentityFunc(token)
	}
	// Default behavior: no identity
	return nil
}

// Compile-time interface compliance verification
var _ domain.TokenCodec = (*MockTokenCodec)(nil)
