package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/tick/internal/core/kv"
	"github.com/colonyops/tick/internal/data/db"
)

// KVStore implements kv.KV using SQLite.
type KVStore struct {
	db *db.DB
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a new SQLite-backed KV store.
func NewKVStore(db *db.DB) *KVStore {
	return &KVStore{db: db}
}

// GetRaw retrieves a raw KV entry with metadata.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *KVStore) GetRaw(ctx context.Context, key string) (kv.Entry, error) {
	row, err := s.db.Queries().KVGet(ctx, key)
	if err != nil {
		if IsNotFoundError(err) {
			return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
		}
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, err)
	}

	return kv.Entry{
		Key:       row.Key,
		Value:     row.Value,
		CreatedAt: time.Unix(0, row.CreatedAt),
		UpdatedAt: time.Unix(0, row.UpdatedAt),
	}, nil
}

// SetRaw stores value verbatim at key, replacing any previous value.
func (s *KVStore) SetRaw(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	now := time.Now().UnixNano()
	if err := s.db.Queries().KVSet(ctx, db.KVSetParams{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}

	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	count, err := s.db.Queries().KVHas(ctx, key)
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	return count > 0, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.db.Queries().KVListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	return keys, nil
}
