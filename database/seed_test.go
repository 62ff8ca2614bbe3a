package database

import "testing"

func TestSeedAllPopulatesEmptyStore(t *testing.T) {
	store := newTestStore(t)

	if err := NewSeeder(store).SeedAll(); err != nil {
		t.Fatalf("SeedAll failed: %v", err)
	}

	for _, collection := range []string{Institutions, Users, Candidates, Ideas, Resources} {
		items, err := store.ReadAll(collection)
		if err != nil {
			t.Fatalf("ReadAll(%s) failed: %v", collection, err)
		}
		if len(items) == 0 {
			t.Errorf("collection %s not seeded", collection)
		}
	}
}

func TestSeedAllIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	seeder := NewSeeder(store)

	if err := seeder.SeedAll(); err != nil {
		t.Fatalf("first SeedAll failed: %v", err)
	}
	users, err := store.ReadAll(Users)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if err := seeder.SeedAll(); err != nil {
		t.Fatalf("second SeedAll failed: %v", err)
	}
	again, err := store.ReadAll(Users)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(again) != len(users) {
		t.Errorf("reseed changed record count: %d -> %d", len(users), len(again))
	}
}

func TestSeedSkipsNonEmptyCollection(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add(Users, testRecord{ID: "existing", Name: "Keep Me"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := NewSeeder(store).SeedAll(); err != nil {
		t.Fatalf("SeedAll failed: %v", err)
	}

	users, err := store.ReadAll(Users)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(users) != 1 || recordID(users[0]) != "existing" {
		t.Errorf("seed overwrote existing users: %d records", len(users))
	}
}
