package mocks

import (
	"context"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// MockAPIGateway implements domain.APIGateway for testing
type MockAPIGateway struct {
	LoginFunc             func(ctx context.Context, email, password string) (string, error)
	ListReportsFunc       func(ctx context.Context) ([]domain.EmergencyReport, error)
	SubmitReportFunc      func(ctx context.Context, input domain.ReportInput) (*domain.EmergencyReport, error)
	FetchProfileFunc      func(ctx context.Context, userID string) (*domain.UserProfile, error)
	ListNotificationsFunc func(ctx context.Context) ([]domain.Notification, error)
}

// NewMockAPIGateway creates a new MockAPIGateway with default behaviors
func NewMockAPIGateway() *MockAPIGateway {
	return &MockAPIGateway{}
}

// Login exchanges credentials for a token
func (m *MockAPIGateway) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: unauthorized
	return "", domain.ErrUnauthorized
}

// ListReports returns the full report collection
func (m *MockAPIGateway) ListReports(ctx context.Context) ([]domain.EmergencyReport, error) {
	if m.ListReportsFunc != nil {
		return m.ListReportsFunc(ctx)
	}
	// Default behavior: empty feed
	return nil, nil
}

// SubmitReport uploads a new report
func (m *MockAPIGateway) SubmitReport(ctx context.Context, input domain.ReportInput) (*domain.EmergencyReport, error) {
	if m.SubmitReportFunc != nil {
		return m.SubmitReportFunc(ctx, input)
	}
	// Default behavior: generic failure
	return nil, domain.NewSubmissionError(0, "")
}

// FetchProfile loads a user profile
func (m *MockAPIGateway) FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if m.FetchProfileFunc != nil {
		return m.FetchProfileFunc(ctx, userID)
	}
	// Default behavior: minimal profile
	return &domain.UserProfile{ID: userID}, nil
}

// ListNotifications returns the notification feed
func (m *MockAPIGateway) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	if m.ListNotificationsFunc != nil {
		return m.ListNotificationsFunc(ctx)
	}
	// Default behavior: empty feed
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.APIGateway = (*MockAPIGateway)(nil)
