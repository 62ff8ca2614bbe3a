package database

import (
	"encoding/json"
	"errors"
	"testing"
)

type testRecord struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := StartBadgerInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db, NewAuditLog())
}

func TestAddPrependsAndAssignsID(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Add(Projects, testRecord{Name: "first"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if first == "" {
		t.Fatal("expected a generated id")
	}

	second, err := store.Add(Projects, testRecord{Name: "second"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items, err := store.ReadAll(Projects)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 records, got %d", len(items))
	}
	// Newest record first
	if recordID(items[0]) != second || recordID(items[1]) != first {
		t.Errorf("expected order [%s %s], got [%s %s]", second, first, recordID(items[0]), recordID(items[1]))
	}
}

func TestAddKeepsProvidedID(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Add(Users, testRecord{ID: "stu_1234", Name: "Aarav"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != "stu_1234" {
		t.Errorf("expected provided id to survive, got %s", id)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Add(Candidates, testRecord{Name: "Priya", Score: 10})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Update(Candidates, id, map[string]any{"score": 42}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	items, err := store.ReadAll(Candidates)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	var got testRecord
	if err := json.Unmarshal(items[0], &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("id changed during update: %s", got.ID)
	}
	if got.Name != "Priya" {
		t.Errorf("untouched field lost: name=%q", got.Name)
	}
	if got.Score != 42 {
		t.Errorf("expected score 42, got %d", got.Score)
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Update(Ideas, "missing", map[string]any{"title": "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Add(Resources, testRecord{Name: "notes"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Remove(Resources, id); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	items, err := store.ReadAll(Resources)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(items))
	}

	if err := store.Remove(Resources, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add(Messages, testRecord{Name: "hello"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	var snapshots [][]json.RawMessage
	unsubscribe, err := store.Subscribe(Messages, func(items []json.RawMessage) {
		snapshots = append(snapshots, items)
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer unsubscribe()

	// Delivery is synchronous, so the initial snapshot is already here
	if len(snapshots) != 1 {
		t.Fatalf("expected 1 initial snapshot, got %d", len(snapshots))
	}
	if len(snapshots[0]) != 1 {
		t.Errorf("expected 1 record in initial snapshot, got %d", len(snapshots[0]))
	}
}

func TestSubscribeReceivesEveryMutation(t *testing.T) {
	store := newTestStore(t)

	var snapshots [][]json.RawMessage
	unsubscribe, err := store.Subscribe(Projects, func(items []json.RawMessage) {
		snapshots = append(snapshots, items)
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer unsubscribe()

	id, err := store.Add(Projects, testRecord{Name: "p1"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Update(Projects, id, map[string]any{"name": "p1-renamed"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := store.Remove(Projects, id); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	// initial + add + update + remove
	if len(snapshots) != 4 {
		t.Fatalf("expected 4 snapshots, got %d", len(snapshots))
	}
	if len(snapshots[3]) != 0 {
		t.Errorf("final snapshot should be empty, has %d records", len(snapshots[3]))
	}
}

func TestUnsubscribeStopsDeliveryAndIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	calls := 0
	unsubscribe, err := store.Subscribe(Ideas, func(items []json.RawMessage) {
		calls++
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	unsubscribe()
	unsubscribe() // second call must be a no-op

	if _, err := store.Add(Ideas, testRecord{Name: "ignored"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected only the initial delivery, got %d calls", calls)
	}
}

func TestSubscribersAreIndependent(t *testing.T) {
	store := newTestStore(t)

	aCalls, bCalls := 0, 0
	unsubA, err := store.Subscribe(Projects, func(items []json.RawMessage) {
		aCalls++
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	unsubB, err := store.Subscribe(Projects, func(items []json.RawMessage) {
		bCalls++
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer unsubB()

	unsubA()

	if _, err := store.Add(Projects, testRecord{Name: "p1"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if aCalls != 1 {
		t.Errorf("disposed subscriber received %d deliveries, want only the initial one", aCalls)
	}
	if bCalls != 2 {
		t.Errorf("remaining subscriber received %d deliveries, want initial + add", bCalls)
	}
}

func TestSubscriberCanMutateFromHandler(t *testing.T) {
	store := newTestStore(t)

	added := false
	_, err := store.Subscribe(Users, func(items []json.RawMessage) {
		// First notification after a write triggers a follow-up write.
		// The store must not deadlock.
		if len(items) == 1 && !added {
			added = true
			if _, err := store.Add(Candidates, testRecord{Name: "companion"}); err != nil {
				t.Errorf("nested Add failed: %v", err)
			}
		}
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if _, err := store.Add(Users, testRecord{Name: "stu"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items, err := store.ReadAll(Candidates)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected nested write to land, got %d records", len(items))
	}
}

func TestSnapshotsDeliverInWriteOrder(t *testing.T) {
	store := newTestStore(t)

	// First subscriber writes to the same collection from inside a delivery.
	nested := false
	unsubA, err := store.Subscribe(Projects, func(items []json.RawMessage) {
		if len(items) == 1 && !nested {
			nested = true
			if _, err := store.Add(Projects, testRecord{Name: "second"}); err != nil {
				t.Errorf("nested Add failed: %v", err)
			}
		}
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer unsubA()

	// Second subscriber must still see snapshots in write order, never the
	// two-record snapshot before the one-record snapshot.
	var sizes []int
	unsubB, err := store.Subscribe(Projects, func(items []json.RawMessage) {
		sizes = append(sizes, len(items))
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer unsubB()

	if _, err := store.Add(Projects, testRecord{Name: "first"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	want := []int{0, 1, 2}
	if len(sizes) != len(want) {
		t.Fatalf("expected %d deliveries, got %v", len(want), sizes)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("snapshots out of write order: got %v, want %v", sizes, want)
		}
	}
}

func TestWriteAllReplacesCollection(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add(Learning, testRecord{Name: "old"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	seed := []testRecord{{ID: "a", Name: "one"}, {ID: "b", Name: "two"}}
	if err := store.WriteAll(Learning, seed); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	items, err := store.ReadAll(Learning)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 records, got %d", len(items))
	}
	if recordID(items[0]) != "a" {
		t.Errorf("expected seed order preserved, got %s first", recordID(items[0]))
	}
}
