package bus

import (
	"context"
	"sync"
)

// Occurrence is an immutable fact published through the bus.
type Occurrence interface {
	Kind() string
}

// Handler reacts to a published occurrence. A returned error propagates to
// the publisher's caller; handlers that must be fault-tolerant swallow
// their own errors.
type Handler func(ctx context.Context, occ Occurrence) error

// Bus dispatches occurrences to subscribed handlers sequentially, in
// subscription order. The subscription registry is guarded for callers that
// share one bus instance; dispatch itself is synchronous.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New creates an empty bus. One instance is constructed at startup and
// passed by reference to all publishers and subscribers.
func New() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for an occurrence kind. There is no
// unsubscribe.
func (b *Bus) Subscribe(kind string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Publish invokes every handler registered for the occurrence's kind, one
// at a time, waiting for each before invoking the next. Publishing a kind
// with zero subscribers is a no-op. The first handler error stops dispatch
// and is returned; the bus performs no isolation between handlers.
func (b *Bus) Publish(ctx context.Context, occ Occurrence) error {
	b.mu.RLock()
	registered := b.handlers[occ.Kind()]
	handlers := make([]Handler, len(registered))
	copy(handlers, registered)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h(ctx, occ); err != nil {
			return err
		}
	}
	return nil
}
