package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Collection names. Each is persisted under one flat key holding a JSON
// array of records with unique string ids.
const (
	Institutions = "institutions"
	Users        = "users"
	Projects     = "projects"
	Candidates   = "candidates"
	Ideas        = "ideas"
	Learning     = "learning"
	Messages     = "messages"
	Resources    = "resources"
)

// keyPrefix namespaces collection keys inside Badger
const keyPrefix = "educhanakya_"

// ErrNotFound is returned when an update or remove references an id that
// does not exist in the collection.
var ErrNotFound = errors.New("record not found")

// Store is the tenant-scoped reactive data store. All domain mutations go
// through it: it persists the full collection, then fans the new snapshot
// out to subscribers and writes one audit entry per mutation.
type Store struct {
	mu    sync.Mutex
	db    *BadgerStore
	bus   *Bus
	audit *AuditLog
}

// NewStore creates a store over the given Badger instance
func NewStore(db *BadgerStore, audit *AuditLog) *Store {
	return &Store{
		db:    db,
		bus:   NewBus(),
		audit: audit,
	}
}

// Audit exposes the audit log for login events and debug surfaces
func (s *Store) Audit() *AuditLog {
	return s.audit
}

// ReadAll returns the current snapshot of a collection
func (s *Store) ReadAll(collection string) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(collection)
}

// Add assigns a fresh id if the record has none, prepends the record,
// persists the collection and returns the assigned id.
func (s *Store) Add(collection string, record any) (string, error) {
	obj, err := toObject(record)
	if err != nil {
		return "", err
	}

	id, _ := obj["id"].(string)
	if id == "" {
		id = uuid.NewString()
		obj["id"] = id
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	items, err := s.read(collection)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	items = append([]json.RawMessage{raw}, items...)
	if err := s.write(collection, items); err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.bus.enqueue(collection, items)
	s.mu.Unlock()

	s.audit.Log("WRITE", fmt.Sprintf("Added new record to %s (ID: %s)", collection, id))
	s.bus.drain(collection)
	return id, nil
}

// Update merges the fields of updates into the record with the given id.
// Returns ErrNotFound if no record matches.
func (s *Store) Update(collection string, id string, updates any) error {
	patch, err := toObject(updates)
	if err != nil {
		return err
	}

	s.mu.Lock()
	items, err := s.read(collection)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	found := false
	for i, item := range items {
		if recordID(item) != id {
			continue
		}
		obj, err := toObject(item)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		for k, v := range patch {
			obj[k] = v
		}
		obj["id"] = id
		merged, err := json.Marshal(obj)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		items[i] = merged
		found = true
		break
	}

	if !found {
		s.mu.Unlock()
		return fmt.Errorf("update %s (ID: %s): %w", collection, id, ErrNotFound)
	}

	if err := s.write(collection, items); err != nil {
		s.mu.Unlock()
		return err
	}
	s.bus.enqueue(collection, items)
	s.mu.Unlock()

	s.audit.Log("WRITE", fmt.Sprintf("Updated record in %s (ID: %s)", collection, id))
	s.bus.drain(collection)
	return nil
}

// Remove deletes the record with the given id.
// Returns ErrNotFound if no record matches.
func (s *Store) Remove(collection string, id string) error {
	s.mu.Lock()
	items, err := s.read(collection)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	filtered := items[:0:0]
	for _, item := range items {
		if recordID(item) != id {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == len(items) {
		s.mu.Unlock()
		return fmt.Errorf("remove %s (ID: %s): %w", collection, id, ErrNotFound)
	}

	if err := s.write(collection, filtered); err != nil {
		s.mu.Unlock()
		return err
	}
	s.bus.enqueue(collection, filtered)
	s.mu.Unlock()

	s.audit.Log("DELETE", fmt.Sprintf("Removed record from %s (ID: %s)", collection, id))
	s.bus.drain(collection)
	return nil
}

// WriteAll replaces a whole collection. Used by the seeder; callers are
// responsible for any audit entry.
func (s *Store) WriteAll(collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("records must encode to a JSON array: %w", err)
	}

	s.mu.Lock()
	if err := s.write(collection, items); err != nil {
		s.mu.Unlock()
		return err
	}
	s.bus.enqueue(collection, items)
	s.mu.Unlock()

	s.bus.drain(collection)
	return nil
}

// Subscribe registers a handler for a collection and synchronously delivers
// the current snapshot before returning, so the first render has data.
// The returned func unsubscribes; calling it more than once is harmless.
func (s *Store) Subscribe(collection string, handler func([]json.RawMessage)) (func(), error) {
	s.mu.Lock()
	items, err := s.read(collection)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	unsubscribe := s.bus.add(collection, handler)
	s.mu.Unlock()

	s.audit.Log("API", fmt.Sprintf("Client subscribed to %s", collection))
	handler(items)
	return unsubscribe, nil
}

// read loads a collection snapshot. Caller must hold s.mu.
func (s *Store) read(collection string) ([]json.RawMessage, error) {
	data, err := s.db.Get(keyPrefix + collection)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	if data == nil {
		return []json.RawMessage{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return items, nil
}

// write persists a collection snapshot. Caller must hold s.mu.
// Subscribers are only notified after a successful persist, so the
// in-memory view never runs ahead of storage.
func (s *Store) write(collection string, items []json.RawMessage) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.db.Set(keyPrefix+collection, data); err != nil {
		return fmt.Errorf("persist collection %s: %w", collection, err)
	}
	return nil
}

// toObject marshals a record (struct or map) into a generic JSON object
func toObject(record any) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("record must encode to a JSON object: %w", err)
	}
	return obj, nil
}

// recordID extracts the id field of a stored record
func recordID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.ID
}
