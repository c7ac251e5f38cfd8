package db

import (
	"context"
	"database/sql"
)

// KvStore is a row of the kv_store table.
type KvStore struct {
	Key       string
	Value     []byte
	CreatedAt int64
	UpdatedAt int64
}

// KVSetParams holds the arguments of KVSet.
type KVSetParams struct {
	Key       string
	Value     []byte
	CreatedAt int64
	UpdatedAt int64
}

// Queries holds the statements run against the database.
type Queries struct {
	db *sql.DB
}

// NewQueries binds a query set to conn.
func NewQueries(conn *sql.DB) *Queries {
	return &Queries{db: conn}
}

const kvGet = `SELECT key, value, created_at, updated_at FROM kv_store WHERE key = ?`

// KVGet returns the row for key. It returns sql.ErrNoRows when absent.
func (q *Queries) KVGet(ctx context.Context, key string) (KvStore, error) {
	var row KvStore
	err := q.db.QueryRowContext(ctx, kvGet, key).Scan(&row.Key, &row.Value, &row.CreatedAt, &row.UpdatedAt)
	return row, err
}

// created_at survives overwrites; only value and updated_at change.
const kvSet = `
INSERT INTO kv_store (key, value, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (key) DO UPDATE SET
    value      = excluded.value,
    updated_at = excluded.updated_at`

// KVSet inserts or replaces the value at key.
func (q *Queries) KVSet(ctx context.Context, arg KVSetParams) error {
	_, err := q.db.ExecContext(ctx, kvSet, arg.Key, arg.Value, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const kvHas = `SELECT COUNT(*) FROM kv_store WHERE key = ?`

// KVHas returns 1 if key exists, 0 otherwise.
func (q *Queries) KVHas(ctx context.Context, key string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, kvHas, key).Scan(&count)
	return count, err
}

const kvListKeys = `SELECT key FROM kv_store ORDER BY key`

// KVListKeys returns all keys in sorted order.
func (q *Queries) KVListKeys(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, kvListKeys)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
