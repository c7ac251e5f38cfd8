// Package tick wires configuration, storage, and the task service into an
// application instance shared by the CLI and the TUI.
package tick

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/tick/internal/core/config"
	"github.com/colonyops/tick/internal/core/ident"
	"github.com/colonyops/tick/internal/core/kv"
	"github.com/colonyops/tick/internal/core/taskstore"
	"github.com/colonyops/tick/internal/data/db"
	"github.com/colonyops/tick/internal/data/stores"
)

// Backend names the key-value store in use.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Storage is the opened key-value backend.
type Storage struct {
	KV      kv.KV
	DB      *db.DB // nil for the memory backend
	Backend Backend
	OpenErr error // why SQLite is not in use, when it was attempted
}

// Location describes where data lives, for display.
func (s Storage) Location() string {
	if s.DB != nil {
		return s.DB.Path()
	}
	return "in-memory (not persisted)"
}

// Close releases the database, if any.
func (s Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// OpenStorage opens the SQLite store in cfg.DataDir. When memoryOnly is set,
// or SQLite cannot be opened, it returns the in-memory store instead; the
// application keeps working but nothing survives the process.
func OpenStorage(cfg *config.Config, memoryOnly bool, log zerolog.Logger) Storage {
	if memoryOnly {
		log.Debug().Msg("using memory store")
		return Storage{KV: stores.NewMemoryKVStore(), Backend: BackendMemory}
	}

	database, err := db.Open(cfg.DataDir, db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	})
	if err != nil {
		event := log.Warn().Err(err).Str("data_dir", cfg.DataDir)
		if stores.IsCorruptionError(err) {
			event = event.Bool("corrupt", true)
		}
		event.Msg("sqlite unavailable, falling back to memory store")

		return Storage{
			KV:      stores.NewMemoryKVStore(),
			Backend: BackendMemory,
			OpenErr: fmt.Errorf("open sqlite: %w", err),
		}
	}

	return Storage{KV: stores.NewKVStore(database), DB: database, Backend: BackendSQLite}
}

// App holds the services for one process.
type App struct {
	Tasks   *TaskService
	Doctor  *DoctorService
	Store   *taskstore.Adapter
	Storage Storage
	Config  *config.Config
}

// NewApp constructs an App over an opened Storage. The task list is not
// loaded until Load is called.
func NewApp(cfg *config.Config, storage Storage, log zerolog.Logger) *App {
	ids := ident.New()
	adapter := taskstore.New(storage.KV, ids, log)

	return &App{
		Tasks:   NewTaskService(adapter, ids, log),
		Doctor:  NewDoctorService(cfg, storage),
		Store:   adapter,
		Storage: storage,
		Config:  cfg,
	}
}

// Load performs the single startup read of the task list.
func (a *App) Load(ctx context.Context) {
	a.Tasks.Load(ctx)
}

// Close releases storage.
func (a *App) Close() error {
	return a.Storage.Close()
}
