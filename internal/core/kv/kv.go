// Package kv defines the local key-value storage contract. Values are opaque
// bytes so callers can decode defensively, the way browser local storage
// hands back raw strings.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned (wrapped) when a key does not exist.
var ErrNotFound = errors.New("kv: key not found")

// Entry represents a raw KV entry with metadata.
type Entry struct {
	Key       string
	Value     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KV is the interface for a persistent key-value store.
// GetRaw on a missing key returns an error wrapping ErrNotFound.
type KV interface {
	GetRaw(ctx context.Context, key string) (Entry, error)
	SetRaw(ctx context.Context, key string, value []byte) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}

// IsNotFound reports whether err signals a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
