// ABOUTME: bbolt-backed persistence slot.
// ABOUTME: Stores slot values in a single bucket of one database file.

package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var slotBucket = []byte("slots")

type BoltSlot struct {
	db *bolt.DB
}

func OpenBolt(path string) (*BoltSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltSlot{db: db}, nil
}

func (s *BoltSlot) Get(key string) ([]byte, error) {
	var val []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(slotBucket).Get([]byte(key))
		if data == nil {
			return ErrKeyNotFound
		}
		// bolt memory is only valid inside the transaction
		val = append([]byte(nil), data...)
		return nil
	})
	return val, err
}

func (s *BoltSlot) Set(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotBucket).Put([]byte(key), value)
	})
}

func (s *BoltSlot) Close() error {
	return s.db.Close()
}
