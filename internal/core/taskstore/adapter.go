// Package taskstore persists the task list under a single fixed key of a
// kv.KV. Reads never fail and writes never surface errors: a corrupt or
// missing payload loads as an empty list and a failed write is logged.
package taskstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/tick/internal/core/ident"
	"github.com/colonyops/tick/internal/core/kv"
	"github.com/colonyops/tick/internal/core/task"
)

// StorageKey is the only key read or written by the adapter.
const StorageKey = "kavia.todos.v1"

// Adapter loads and saves the full task list.
type Adapter struct {
	kv  kv.KV
	ids ident.IDGenerator
	now func() time.Time
	log zerolog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithClock overrides the clock used to fill missing createdAt values.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// New creates an Adapter over store. ids supplies replacements for missing
// or duplicate identifiers found while decoding.
func New(store kv.KV, ids ident.IDGenerator, log zerolog.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		kv:  store,
		ids: ids,
		now: time.Now,
		log: log.With().Str("component", "taskstore").Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load reads and decodes the stored list. It returns an empty list when the
// key is absent, unreadable, or does not hold a JSON array.
func (a *Adapter) Load(ctx context.Context) task.List {
	raw, ok := a.Raw(ctx)
	if !ok {
		return task.List{}
	}

	tasks := Decode(raw, a.ids, a.now)
	a.log.Debug().Int("count", len(tasks)).Msg("loaded tasks")
	return tasks
}

// Raw returns the stored payload verbatim. The second return value is false
// when nothing could be read.
func (a *Adapter) Raw(ctx context.Context) ([]byte, bool) {
	entry, err := a.kv.GetRaw(ctx, StorageKey)
	if err != nil {
		if kv.IsNotFound(err) {
			a.log.Debug().Str("key", StorageKey).Msg("no stored tasks")
		} else {
			a.log.Warn().Err(err).Str("key", StorageKey).Msg("read stored tasks")
		}
		return nil, false
	}
	return entry.Value, true
}

// Save writes the full list. Failures are logged and dropped; the caller's
// in-memory list remains the source of truth.
func (a *Adapter) Save(ctx context.Context, tasks task.List) {
	if tasks == nil {
		tasks = task.List{}
	}

	payload, err := json.Marshal(tasks)
	if err != nil {
		a.log.Warn().Err(err).Msg("encode tasks")
		return
	}

	if err := a.kv.SetRaw(ctx, StorageKey, payload); err != nil {
		a.log.Warn().Err(err).Str("key", StorageKey).Int("count", len(tasks)).Msg("persist tasks")
		return
	}

	a.log.Debug().Int("count", len(tasks)).Msg("saved tasks")
}
