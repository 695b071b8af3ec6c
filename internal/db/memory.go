// ABOUTME: In-memory persistence slot.
// ABOUTME: Used by tests and by sessions that opt out of on-disk storage.

package db

import "sync"

type MemorySlot struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *MemorySlot {
	return &MemorySlot{data: make(map[string][]byte)}
}

func (s *MemorySlot) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *MemorySlot) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemorySlot) Close() error {
	return nil
}
