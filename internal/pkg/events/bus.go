// In-process pub/sub decoupling sibling components without ambient globals
package events

import "sync"

const (
	TopicCreditsRefresh = "credits-refresh"
	TopicJobCompleted   = "job-completed"
	TopicJobFailed      = "job-failed"
	TopicSessionExpired = "session-expired"
)

type Handler func(payload interface{})

// Bus is a minimal synchronous event bus. Publish runs every subscriber in
// the caller's goroutine; handlers must not block.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]Handler
}

func NewBus() *Bus {
	return &Bus{subs: map[string]map[int]Handler{}}
}

// Subscribe registers a handler and returns its unsubscribe func.
func (b *Bus) Subscribe(topic string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[topic] == nil {
		b.subs[topic] = map[int]Handler{}
	}
	id := b.next
	b.next++
	b.subs[topic][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, fn := range b.subs[topic] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(payload)
	}
}
