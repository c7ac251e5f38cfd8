package tick

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tick/internal/core/config"
	"github.com/colonyops/tick/internal/core/doctor"
)

func testConfig(t *testing.T, dataDir string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = dataDir
	return &cfg
}

func TestOpenStorage_SQLite(t *testing.T) {
	cfg := testConfig(t, t.TempDir())

	storage := OpenStorage(cfg, false, zerolog.Nop())
	t.Cleanup(func() { _ = storage.Close() })

	assert.Equal(t, BackendSQLite, storage.Backend)
	require.NotNil(t, storage.DB)
	assert.NoError(t, storage.OpenErr)
	assert.Equal(t, filepath.Join(cfg.DataDir, "tick.db"), storage.Location())
}

func TestOpenStorage_MemoryOnly(t *testing.T) {
	storage := OpenStorage(testConfig(t, t.TempDir()), true, zerolog.Nop())

	assert.Equal(t, BackendMemory, storage.Backend)
	assert.Nil(t, storage.DB)
	assert.NoError(t, storage.OpenErr)
	assert.NoError(t, storage.Close())
}

func TestOpenStorage_FallsBackToMemory(t *testing.T) {
	// A file where the data directory should be makes SQLite unopenable.
	blocker := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	storage := OpenStorage(testConfig(t, blocker), false, zerolog.Nop())

	assert.Equal(t, BackendMemory, storage.Backend)
	assert.Error(t, storage.OpenErr)
	require.NotNil(t, storage.KV)

	// The app still works in memory.
	app := NewApp(testConfig(t, blocker), storage, zerolog.Nop())
	app.Load(context.Background())
	_, ok := app.Tasks.Add(context.Background(), "works anyway")
	assert.True(t, ok)
	assert.Equal(t, 1, app.Tasks.RemainingCount())
}

func TestApp_DoctorReportsStorage(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, t.TempDir())
	storage := OpenStorage(cfg, false, zerolog.Nop())
	app := NewApp(cfg, storage, zerolog.Nop())
	t.Cleanup(func() { _ = app.Close() })

	app.Load(ctx)
	app.Tasks.Add(ctx, "one")

	results := app.Doctor.RunChecks(ctx, "")
	require.Len(t, results, 2)
	assert.Equal(t, "Storage", results[1].Name)

	_, _, failed := doctor.Summary(results)
	assert.Equal(t, 0, failed)
}
