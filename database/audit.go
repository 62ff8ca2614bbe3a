package database

import (
	"fmt"
	"sync"
	"time"
)

// MaxAuditEntries caps the in-memory audit ring. Oldest entries drop first.
const MaxAuditEntries = 50

// AuditLog is a bounded, append-only trail of human-readable events, kept
// purely in memory as a diagnostic aid. It is exposed as a subscribable
// stream with the same synchronous-initial-delivery contract as the bus.
type AuditLog struct {
	mu      sync.Mutex
	next    int
	entries []string
	subs    []auditHandler
}

type auditHandler struct {
	id int
	fn func([]string)
}

// NewAuditLog creates an empty audit log
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Log prepends a timestamped entry and pushes the full buffer to subscribers
func (l *AuditLog) Log(source, message string) {
	entry := fmt.Sprintf("[%s] [%s] %s", time.Now().Format("15:04:05"), source, message)

	l.mu.Lock()
	l.entries = append([]string{entry}, l.entries...)
	if len(l.entries) > MaxAuditEntries {
		l.entries = l.entries[:MaxAuditEntries]
	}
	snapshot := l.snapshot()
	handlers := make([]auditHandler, len(l.subs))
	copy(handlers, l.subs)
	l.mu.Unlock()

	for _, h := range handlers {
		h.fn(snapshot)
	}
}

// Entries returns a copy of the current buffer, most recent first
func (l *AuditLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// Subscribe registers a handler and synchronously delivers the current
// buffer. The returned func unsubscribes; calling it twice is harmless.
func (l *AuditLog) Subscribe(fn func([]string)) func() {
	l.mu.Lock()
	l.next++
	id := l.next
	l.subs = append(l.subs, auditHandler{id: id, fn: fn})
	snapshot := l.snapshot()
	l.mu.Unlock()

	fn(snapshot)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, h := range l.subs {
			if h.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// snapshot copies the buffer. Caller must hold l.mu.
func (l *AuditLog) snapshot() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}
