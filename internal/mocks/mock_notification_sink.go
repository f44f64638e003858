package mocks

import (
	"context"
	"sync"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// MockNotificationSink implements domain.NotificationSink for testing
type MockNotificationSink struct {
	NotifyFunc func(ctx context.Context, notification domain.Notification) error

	mu        sync.Mutex
	delivered []domain.Notification
}

// NewMockNotificationSink creates a new MockNotificationSink with default behaviors
func NewMockNotificationSink() *MockNotificationSink {
	return &MockNotificationSink{}
}

// Notify delivers one notification
func (m *MockNotificationSink) Notify(ctx context.Context, notification domain.Notification) error {
	if m.NotifyFunc != nil {
		if err := m.NotifyFunc(ctx, notification); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delivered = append(m.delivered, notification)
	return nil
}

// Delivered returns the notifications delivered so far.
func (m *MockNotificationSink) Delivered() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.delivered...)
}

// Compile-time interface compliance verification
var _ domain.NotificationSink = (*MockNotificationSink)(nil)
