// Package db owns the SQLite connection that backs the local key-value store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "tick.db"

const (
	maxRetries  = 5
	initialWait = 100 * time.Millisecond
)

// OpenOptions configures the connection pool.
type OpenOptions struct {
	MaxOpenConns int
	MaxIdleConns int
	BusyTimeout  int // milliseconds
}

// DefaultOpenOptions returns the pool settings used when config leaves them unset.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		BusyTimeout:  5000,
	}
}

// DB wraps a SQL database connection and its queries.
type DB struct {
	conn    *sql.DB
	path    string
	queries *Queries
}

// Open creates the data directory if needed, opens (or creates) the database
// inside it, verifies connectivity, and applies pending migrations.
func Open(dataDir string, opts OpenOptions) (*DB, error) {
	defaults := DefaultOpenOptions()
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = defaults.MaxOpenConns
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = defaults.MaxIdleConns
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = defaults.BusyTimeout
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, FileName)

	// WAL keeps a second tick process from corrupting the file; it does not
	// make concurrent writers consistent.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", dbPath, opts.BusyTimeout)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)
	conn.SetConnMaxLifetime(0)

	db := &DB{
		conn:    conn,
		path:    dbPath,
		queries: NewQueries(conn),
	}

	ctx := context.Background()

	if err := db.pingWithRetry(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrateUp(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Queries returns the query set bound to this connection.
func (db *DB) Queries() *Queries {
	return db.queries
}

// pingWithRetry attempts to ping the database with exponential backoff.
func (db *DB) pingWithRetry(ctx context.Context) error {
	var lastErr error
	wait := initialWait
	for i := range maxRetries {
		lastErr = db.conn.PingContext(ctx)
		if lastErr == nil {
			return nil
		}

		if i < maxRetries-1 {
			time.Sleep(wait)
			wait *= 2
		}
	}

	return fmt.Errorf("ping failed after %d retries: %w", maxRetries, lastErr)
}
