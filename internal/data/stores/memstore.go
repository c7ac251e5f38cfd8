package stores

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/colonyops/tick/internal/core/kv"
	memkv "github.com/colonyops/tick/pkg/kv"
)

// MemoryKVStore implements kv.KV in process memory. It stands in for the
// SQLite store when persistence is unavailable; contents are lost on exit.
type MemoryKVStore struct {
	data *memkv.Store[string, kv.Entry]
	now  func() time.Time
}

var _ kv.KV = (*MemoryKVStore)(nil)

// NewMemoryKVStore creates an empty in-memory KV store.
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{
		data: memkv.New[string, kv.Entry](),
		now:  time.Now,
	}
}

// GetRaw returns a copy of the entry at key.
func (s *MemoryKVStore) GetRaw(_ context.Context, key string) (kv.Entry, error) {
	entry, ok := s.data.Get(key)
	if !ok {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	entry.Value = slices.Clone(entry.Value)
	return entry, nil
}

// SetRaw stores a copy of value at key.
func (s *MemoryKVStore) SetRaw(_ context.Context, key string, value []byte) error {
	now := s.now()
	s.data.Update(key, func(prev kv.Entry, ok bool) kv.Entry {
		created := now
		if ok {
			created = prev.CreatedAt
		}
		return kv.Entry{
			Key:       key,
			Value:     append([]byte{}, value...),
			CreatedAt: created,
			UpdatedAt: now,
		}
	})
	return nil
}

// Has returns whether a key exists.
func (s *MemoryKVStore) Has(_ context.Context, key string) (bool, error) {
	_, ok := s.data.Get(key)
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *MemoryKVStore) ListKeys(_ context.Context) ([]string, error) {
	return s.data.Keys(), nil
}
