package mocks

import (
	"context"
	"sync"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// MockReportCache implements domain.ReportCache for testing. Without
// overrides it behaves as an in-memory map keyed by user id.
type MockReportCache struct {
	SaveActiveFunc func(ctx context.Context, report *domain.EmergencyReport) error
	LoadActiveFunc func(ctx context.Context, userID string) (*domain.EmergencyReport, error)
	ClearFunc      func(ctx context.Context, userID string) error

	mu      sync.Mutex
	entries map[string]domain.EmergencyReport
}

// NewMockReportCache creates a new MockReportCache with default behaviors
func NewMockReportCache() *MockReportCache {
	return &MockReportCache{entries: make(map[string]domain.EmergencyReport)}
}

// SaveActive caches the active report
func (m *MockReportCache) SaveActive(ctx context.Context, report *domain.EmergencyReport) error {
	if m.SaveActiveFunc != nil {
		return m.SaveActiveFunc(ctx, report)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[report.UserID] = *report
	return nil
}

// LoadActive reads the cached active report
func (m *MockReportCache) LoadActive(ctx context.Context, userID string) (*domain.EmergencyReport, error) {
	if m.LoadActiveFunc != nil {
		return m.LoadActiveFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if report, ok := m.entries[userID]; ok {
		r := report
		return &r, nil
	}
	return nil, nil
}

// Clear removes the cached active report
func (m *MockReportCache) Clear(ctx context.Context, userID string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	return nil
}

// Compile-time interface compliance verification
var _ domain.ReportCache = (*MockReportCache)(nil)
