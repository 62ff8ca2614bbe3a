package database

import "encoding/json"

// Collection is a typed view over one store collection. The store itself
// works on raw JSON so external (AI-derived) payloads can carry any string
// or array field; the typed veneer is where domain code decodes.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection binds a record type to a collection name
func NewCollection[T any](store *Store, name string) Collection[T] {
	return Collection[T]{store: store, name: name}
}

// ReadAll returns the decoded snapshot of the collection
func (c Collection[T]) ReadAll() ([]T, error) {
	items, err := c.store.ReadAll(c.name)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot[T](items)
}

// Add persists a new record and returns its assigned id
func (c Collection[T]) Add(record T) (string, error) {
	return c.store.Add(c.name, record)
}

// Update merges fields into the record with the given id
func (c Collection[T]) Update(id string, updates any) error {
	return c.store.Update(c.name, id, updates)
}

// Remove deletes the record with the given id
func (c Collection[T]) Remove(id string) error {
	return c.store.Remove(c.name, id)
}

// Subscribe delivers decoded snapshots, starting with the current one.
// A delivery whose snapshot fails to decode is skipped; the raw snapshot
// stays persisted untouched.
func (c Collection[T]) Subscribe(handler func([]T)) (func(), error) {
	return c.store.Subscribe(c.name, func(items []json.RawMessage) {
		records, err := decodeSnapshot[T](items)
		if err != nil {
			return
		}
		handler(records)
	})
}

func decodeSnapshot[T any](items []json.RawMessage) ([]T, error) {
	records := make([]T, 0, len(items))
	for _, item := range items {
		var rec T
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
