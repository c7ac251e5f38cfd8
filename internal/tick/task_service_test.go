package tick

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tick/internal/core/ident"
	"github.com/colonyops/tick/internal/core/kv"
	"github.com/colonyops/tick/internal/core/task"
	"github.com/colonyops/tick/internal/core/taskstore"
	"github.com/colonyops/tick/internal/data/db"
	"github.com/colonyops/tick/internal/data/stores"
)

// recordingStore is an in-memory Persister that counts saves.
type recordingStore struct {
	loaded task.List
	saved  []task.List
}

func (r *recordingStore) Load(context.Context) task.List { return r.loaded.Clone() }

func (r *recordingStore) Save(_ context.Context, tasks task.List) {
	r.saved = append(r.saved, tasks.Clone())
}

func (r *recordingStore) last() task.List {
	if len(r.saved) == 0 {
		return nil
	}
	return r.saved[len(r.saved)-1]
}

func seqIDs() ident.IDGenerator {
	n := 0
	return ident.Func(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

var testNow = time.UnixMilli(1_700_000_000_000)

func newTestService(t *testing.T, initial task.List) (*TaskService, *recordingStore) {
	t.Helper()
	store := &recordingStore{loaded: initial}
	svc := NewTaskService(store, seqIDs(), zerolog.Nop(), WithClock(func() time.Time { return testNow }))
	svc.Load(context.Background())
	return svc, store
}

func newSQLiteService(t *testing.T) (*TaskService, kv.KV) {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	store := stores.NewKVStore(database)
	ids := ident.New()
	svc := NewTaskService(taskstore.New(store, ids, zerolog.Nop()), ids, zerolog.Nop())
	svc.Load(context.Background())
	return svc, store
}

func TestTaskService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("prepends incomplete task and persists", func(t *testing.T) {
		svc, store := newTestService(t, task.List{{ID: "old", Title: "old"}})
		before := svc.RemainingCount()

		added, ok := svc.Add(ctx, "  Buy milk  ")
		require.True(t, ok)

		assert.Equal(t, task.Task{ID: "id-1", Title: "Buy milk", Completed: false, CreatedAt: testNow.UnixMilli()}, added)
		assert.Equal(t, before+1, svc.RemainingCount())
		assert.Equal(t, added, svc.Tasks()[0])
		assert.Equal(t, svc.Tasks(), store.last())
	})

	t.Run("blank titles are ignored", func(t *testing.T) {
		for _, title := range []string{"", "   ", "\t\n"} {
			svc, store := newTestService(t, nil)

			_, ok := svc.Add(ctx, title)
			assert.False(t, ok)
			assert.Empty(t, svc.Tasks())
			assert.Empty(t, store.saved, "no persist for %q", title)
		}
	})
}

func TestTaskService_Toggle(t *testing.T) {
	ctx := context.Background()
	initial := task.List{
		{ID: "a", Title: "a"},
		{ID: "b", Title: "b", Completed: true},
		{ID: "c", Title: "c"},
	}

	t.Run("twice restores", func(t *testing.T) {
		svc, store := newTestService(t, initial)

		require.True(t, svc.Toggle(ctx, "b"))
		assert.False(t, svc.Tasks()[1].Completed)
		require.True(t, svc.Toggle(ctx, "b"))

		assert.Equal(t, initial, svc.Tasks())
		assert.Len(t, store.saved, 2)
	})

	t.Run("miss is a no-op", func(t *testing.T) {
		svc, store := newTestService(t, initial)

		assert.False(t, svc.Toggle(ctx, "zzz"))
		assert.Equal(t, initial, svc.Tasks())
		assert.Empty(t, store.saved)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, task.List{
		{ID: "a", Title: "a"},
		{ID: "b", Title: "b"},
		{ID: "c", Title: "c"},
	})

	require.True(t, svc.Delete(ctx, "b"))
	assert.Equal(t, []string{"a", "c"}, svc.Tasks().Titles())
	assert.Len(t, store.saved, 1)

	assert.False(t, svc.Delete(ctx, "b"), "second delete is a no-op")
	assert.Equal(t, []string{"a", "c"}, svc.Tasks().Titles())
	assert.Len(t, store.saved, 1)
}

func TestTaskService_ClearCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("removes completed and keeps order", func(t *testing.T) {
		svc, store := newTestService(t, task.List{
			{ID: "a", Title: "a", Completed: true},
			{ID: "b", Title: "b"},
			{ID: "c", Title: "c", Completed: true},
			{ID: "d", Title: "d"},
		})
		assert.True(t, svc.HasCompleted())

		assert.Equal(t, 2, svc.ClearCompleted(ctx))
		assert.Equal(t, []string{"b", "d"}, svc.Tasks().Titles())
		assert.False(t, svc.HasCompleted())
		assert.Len(t, store.saved, 1)
	})

	t.Run("nothing completed is a no-op", func(t *testing.T) {
		svc, store := newTestService(t, task.List{{ID: "a", Title: "a"}})

		assert.Equal(t, 0, svc.ClearCompleted(ctx))
		assert.Empty(t, store.saved)
	})
}

func TestTaskService_TasksReturnsCopy(t *testing.T) {
	svc, _ := newTestService(t, task.List{{ID: "a", Title: "a"}})

	got := svc.Tasks()
	got[0].Title = "mutated"

	assert.Equal(t, "a", svc.Tasks()[0].Title)
}

func TestTaskService_RandomOpsKeepIDsUnique(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := range 500 {
		tasks := svc.Tasks()
		pick := func() string {
			if len(tasks) == 0 {
				return "missing"
			}
			return tasks[rng.IntN(len(tasks))].ID
		}

		switch rng.IntN(5) {
		case 0, 1:
			svc.Add(ctx, fmt.Sprintf("task %d", i))
		case 2:
			svc.Toggle(ctx, pick())
		case 3:
			svc.Delete(ctx, pick())
		case 4:
			svc.ClearCompleted(ctx)
		}

		seen := map[string]bool{}
		for _, tk := range svc.Tasks() {
			require.False(t, seen[tk.ID], "duplicate id %q after op %d", tk.ID, i)
			seen[tk.ID] = true
			require.NotEmpty(t, tk.Title)
		}
		require.Equal(t, len(svc.Tasks())-task.CompletedCount(svc.Tasks()), svc.RemainingCount())
	}
}

func TestTaskService_Import(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, task.List{{ID: "a", Title: "existing"}})

	added := svc.Import(ctx, []byte(`[
		{"id":"a","title":"clash","completed":false,"createdAt":1},
		{"id":"b","title":"new one","completed":true,"createdAt":2},
		{"title":"no id"},
		{"id":"c","title":"   "}
	]`))

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"existing", "new one", "no id"}, svc.Tasks().Titles())
	assert.True(t, svc.Tasks()[1].Completed)
	assert.Len(t, store.saved, 1)

	assert.Equal(t, 0, svc.Import(ctx, []byte(`{"not":"an array"}`)))
	assert.Len(t, store.saved, 1)
}

func TestTaskService_View(t *testing.T) {
	svc, _ := newTestService(t, task.List{
		{ID: "a", Title: "Write docs"},
		{ID: "b", Title: "Review docs", Completed: true},
		{ID: "c", Title: "Ship"},
	})

	v, err := svc.View(task.FilterActive, "docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"Write docs"}, v.Rows.Titles())
	assert.Equal(t, 2, v.Remaining)
	assert.Equal(t, 3, v.Total)
	assert.True(t, v.CanClear)
	assert.False(t, v.Empty)
}

func TestTaskService_WriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	ids := seqIDs()
	svc := NewTaskService(taskstore.New(brokenKV{}, ids, zerolog.Nop()), ids, zerolog.Nop())
	svc.Load(ctx)

	_, ok := svc.Add(ctx, "still here")
	require.True(t, ok)
	assert.Equal(t, []string{"still here"}, svc.Tasks().Titles())
	assert.True(t, svc.Toggle(ctx, "id-1"))
	assert.Equal(t, 0, svc.RemainingCount())
}

func TestTaskService_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	open := func() (*TaskService, func()) {
		database, err := db.Open(dir, db.DefaultOpenOptions())
		require.NoError(t, err)
		ids := ident.New()
		svc := NewTaskService(taskstore.New(stores.NewKVStore(database), ids, zerolog.Nop()), ids, zerolog.Nop())
		svc.Load(ctx)
		return svc, func() { _ = database.Close() }
	}

	svc, closeDB := open()
	svc.Add(ctx, "first")
	second, _ := svc.Add(ctx, "second")
	svc.Toggle(ctx, second.ID)
	want := svc.Tasks()
	closeDB()

	reopened, closeDB := open()
	defer closeDB()
	assert.Equal(t, want, reopened.Tasks())
}

// End-to-end over a real SQLite store, starting from empty storage.
func TestTaskService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSQLiteService(t)

	require.Empty(t, svc.Tasks())

	write, ok := svc.Add(ctx, "Write report")
	require.True(t, ok)
	_, ok = svc.Add(ctx, "Review report")
	require.True(t, ok)

	assert.Equal(t, []string{"Review report", "Write report"}, svc.Tasks().Titles())
	assert.Equal(t, 2, svc.RemainingCount())

	require.True(t, svc.Toggle(ctx, write.ID))
	assert.Equal(t, 1, svc.RemainingCount())

	assert.Equal(t, 1, svc.ClearCompleted(ctx))
	assert.Equal(t, []string{"Review report"}, svc.Tasks().Titles())
}

type brokenKV struct{}

func (brokenKV) GetRaw(context.Context, string) (kv.Entry, error) {
	return kv.Entry{}, fmt.Errorf("kv get: %w", kv.ErrNotFound)
}
func (brokenKV) SetRaw(context.Context, string, []byte) error { return fmt.Errorf("readonly") }
func (brokenKV) Has(context.Context, string) (bool, error)    { return false, nil }
func (brokenKV) ListKeys(context.Context) ([]string, error)   { return nil, nil }
