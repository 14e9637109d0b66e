package store

import (
	"fmt"
	"time"

	"github.com/YanisseIsmaili/github-monitor/internal/port"
	"go.etcd.io/bbolt"
)

const settingsBucket = "settings"

// BoltStore is a bbolt-backed key→string store. Every Set/Delete runs in its
// own write transaction, so a mutation is durable before the call returns.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or port.ErrKeyNotFound.
func (s *BoltStore) Get(key string) (string, error) {
	var value string
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(settingsBucket)).Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	if !found {
		return "", port.ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key.
func (s *BoltStore) Set(key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key; absent keys are a no-op.
func (s *BoltStore) Delete(key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
