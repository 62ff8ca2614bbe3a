package database

import (
	"encoding/json"
	"sync"
)

// Bus is the per-collection change notification registry. Every successful
// store mutation enqueues the new full snapshot while the store lock is
// held, so queue order matches write order, and deliveries drain in that
// order to all handlers registered for the collection.
type Bus struct {
	mu       sync.Mutex
	next     int
	subs     map[string][]busHandler
	pending  map[string][][]json.RawMessage
	draining map[string]bool
}

type busHandler struct {
	id int
	fn func([]json.RawMessage)
}

// NewBus creates an empty registry
func NewBus() *Bus {
	return &Bus{
		subs:     make(map[string][]busHandler),
		pending:  make(map[string][][]json.RawMessage),
		draining: make(map[string]bool),
	}
}

// add registers a handler and returns its disposer. Handlers are identified
// by an internal id, so calling the disposer twice can never remove another
// subscriber, and the same function may be registered more than once.
func (b *Bus) add(collection string, fn func([]json.RawMessage)) func() {
	b.mu.Lock()
	b.next++
	id := b.next
	b.subs[collection] = append(b.subs[collection], busHandler{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		handlers := b.subs[collection]
		for i, h := range handlers {
			if h.id == id {
				b.subs[collection] = append(handlers[:i:i], handlers[i+1:]...)
				return
			}
		}
	}
}

// enqueue appends a snapshot to the collection's delivery queue. The store
// calls it while still holding its write lock, which is what pins delivery
// order to write order.
func (b *Bus) enqueue(collection string, snapshot []json.RawMessage) {
	b.mu.Lock()
	b.pending[collection] = append(b.pending[collection], snapshot)
	b.mu.Unlock()
}

// drain delivers queued snapshots in write order. One goroutine drains a
// collection at a time; anyone else arriving mid-drain leaves its snapshot
// on the queue and returns, so a handler that mutates the store from inside
// a delivery never deadlocks and never sees snapshots out of order.
func (b *Bus) drain(collection string) {
	b.mu.Lock()
	if b.draining[collection] {
		b.mu.Unlock()
		return
	}
	b.draining[collection] = true

	for len(b.pending[collection]) > 0 {
		snapshot := b.pending[collection][0]
		b.pending[collection] = b.pending[collection][1:]
		handlers := make([]busHandler, len(b.subs[collection]))
		copy(handlers, b.subs[collection])
		b.mu.Unlock()

		for _, h := range handlers {
			h.fn(snapshot)
		}

		b.mu.Lock()
	}
	b.draining[collection] = false
	b.mu.Unlock()
}
