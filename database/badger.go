package database

import (
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/educhanakya/campus-api/config"
)

// BadgerStore wraps the embedded Badger database that backs all collections.
// Each collection lives under a single key holding a JSON array of records.
type BadgerStore struct {
	db *badger.DB
}

// StartBadger opens the persistent Badger database at the configured DATA_DIR
func StartBadger() (*BadgerStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(getEnv.DATA_DIR, 0o750); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(getEnv.DATA_DIR).
		WithLogger(nil). // Badger's own logging is too chatty for app logs
		WithSyncWrites(true)

	db, err := badger.Open(opts)
	if err != nil {
		log.Println("Unable to open Badger store:", err)
		return nil, err
	}

	log.Println("Successfully opened Badger store at", getEnv.DATA_DIR)

	return &BadgerStore{db: db}, nil
}

// StartBadgerInMemory opens a throwaway in-memory Badger instance for tests
func StartBadgerInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{db: db}, nil
}

// Get reads the raw value under key. A missing key returns (nil, nil).
func (s *BadgerStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set writes the raw value under key.
func (s *BadgerStore) Set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// HealthCheck verifies the store is still usable
func (s *BadgerStore) HealthCheck() error {
	if s.db.IsClosed() {
		return badger.ErrDBClosed
	}
	return nil
}

// Size returns the LSM tree and value log sizes in bytes
func (s *BadgerStore) Size() (lsm int64, vlog int64) {
	return s.db.Size()
}

// RunGC triggers one round of Badger value log garbage collection.
// ErrNoRewrite (nothing to collect) is reported as nil.
func (s *BadgerStore) RunGC(ratio float64) error {
	err := s.db.RunValueLogGC(ratio)
	if err == badger.ErrNoRewrite {
		return nil
	}
	return err
}

// Close closes the underlying database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
