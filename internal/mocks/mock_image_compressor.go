package mocks

import (
	"context"
	"sync"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// MockImageCompressor implements domain.ImageCompressor for testing
type MockImageCompressor struct {
	CompressFunc func(ctx context.Context, path string) string

	mu    sync.Mutex
	calls []string
}

// NewMockImageCompressor creates a new MockImageCompressor with default behaviors
func NewMockImageCompressor() *MockImageCompressor {
	return &MockImageCompressor{}
}

// Compress shrinks a photo under the size budget
func (m *MockImageCompressor) Compress(ctx context.Context, path string) string {
	m.mu.Lock()
	m.calls = append(m.calls, path)
	m.mu.Unlock()
	if m.CompressFunc != nil {
		return m.CompressFunc(ctx, path)
	}
	// Default behavior: passthrough
	return path
}

// Calls returns the paths Compress was invoked with.
func (m *MockImageCompressor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Compile-time interface compliance verification
var _ domain.ImageCompressor = (*MockImageCompressor)(nil)
