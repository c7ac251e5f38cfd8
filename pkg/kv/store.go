// Package kv provides a generic thread-safe map used by in-memory backends.
package kv

import (
	"cmp"
	"slices"
	"sync"
)

// Store is a thread-safe generic key-value map.
type Store[K cmp.Ordered, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates an empty store.
func New[K cmp.Ordered, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Update replaces the value at key with fn(previous, existed) while holding
// the write lock, so read-modify-write sequences cannot interleave.
func (s *Store[K, V]) Update(key K, fn func(prev V, ok bool) V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.data[key]
	next := fn(prev, ok)
	s.data[key] = next
	return next
}

// Delete removes a key from the store.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Keys returns all keys in ascending order.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	keys := make([]K, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	slices.Sort(keys)
	return keys
}
