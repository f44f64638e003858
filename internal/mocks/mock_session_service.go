package mocks

import (
	"context"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// MockSessionService implements domain.SessionService for testing
type MockSessionService struct {
	LoginFunc     func(ctx context.Context, email, password string) error
	SignInFunc    func(ctx context.Context, token string) error
	SignOutFunc   func(ctx context.Context)
	CheckAuthFunc func(ctx context.Context) error
	CurrentFunc   func() domain.Session
	TokenFunc     func() string
}

// NewMockSessionService creates a new MockSessionService with default behaviors
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

// Login signs in with credentials
func (m *MockSessionService) Login(ctx context.Context, email, password string) error {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil
}

// SignIn establishes a session from a token
func (m *MockSessionService) SignIn(ctx context.Context, token string) error {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, token)
	}
	return nil
}

// SignOut clears the session
func (m *MockSessionService) SignOut(ctx context.Context) {
	if m.SignOutFunc != nil {
		m.SignOutFunc(ctx)
	}
}

// CheckAuth restores the persisted session
func (m *MockSessionService) CheckAuth(ctx context.Context) error {
	if m.CheckAuthFunc != nil {
		return m.CheckAuthFunc(ctx)
	}
	return nil
}

// Current returns the session snapshot
func (m *MockSessionService) Current() domain.Session {
	if m.CurrentFunc != nil {
		return m.CurrentFunc()
	}
	// Default behavior: signed out
	return domain.Session{}
}

// Token returns the current bearer token
func (m *MockSessionService) Token() string {
	if m.TokenFunc != nil {
		return m.TokenFunc()
	}
	// Default behavior: signed out
	return ""
}

// Compile-time interface compliance verification
var _ domain.SessionService = (*MockSessionService)(nil)
