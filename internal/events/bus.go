package events

import (
	"sync"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// BusImpl implements domain.EventBus as a synchronous in-process fan-out.
// Handlers run on the publisher's goroutine; subscriptions are wired once at
// construction time, so the cross-store cascade is explicit instead of a
// runtime dynamic lookup.
type BusImpl struct {
	mu       sync.RWMutex
	handlers map[domain.EventType][]domain.EventHandler
}

// NewBus creates an empty bus.
func NewBus() domain.EventBus {
	return &BusImpl{handlers: make(map[domain.EventType][]domain.EventHandler)}
}

// Subscribe implements domain.EventBus.
func (b *BusImpl) Subscribe(eventType domain.EventType, handler domain.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish implements domain.EventBus.
func (b *BusImpl) Publish(event domain.Event) {
	b.mu.RLock()
	handlers := append([]domain.EventHandler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
