package tick

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/tick/internal/core/ident"
	"github.com/colonyops/tick/internal/core/logging"
	"github.com/colonyops/tick/internal/core/task"
	"github.com/colonyops/tick/internal/core/taskstore"
)

// Persister loads and saves the full task list. Save must not fail from the
// caller's point of view.
type Persister interface {
	Load(ctx context.Context) task.List
	Save(ctx context.Context, tasks task.List)
}

// TaskService owns the in-memory task list for one process. Every effective
// mutation replaces the snapshot and writes it through the Persister before
// returning. It is not safe for concurrent use.
type TaskService struct {
	store Persister
	ids   ident.IDGenerator
	now   func() time.Time
	log   zerolog.Logger

	tasks task.List
}

// Option configures a TaskService.
type Option func(*TaskService)

// WithClock overrides the clock used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) { s.now = now }
}

// NewTaskService creates a TaskService with an empty list. Call Load to read
// the persisted list.
func NewTaskService(store Persister, ids ident.IDGenerator, log zerolog.Logger, opts ...Option) *TaskService {
	s := &TaskService{
		store: store,
		ids:   ids,
		now:   time.Now,
		log:   log.With().Str("component", "task-service").Logger(),
		tasks: task.List{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one.
func (s *TaskService) Load(ctx context.Context) {
	s.tasks = s.store.Load(ctx)
	s.log.Debug().Ctx(ctx).Int("count", len(s.tasks)).Msg("tasks loaded")
}

// Tasks returns a copy of the current list.
func (s *TaskService) Tasks() task.List {
	return s.tasks.Clone()
}

// Add prepends a new incomplete task. Blank titles are ignored and nothing
// is persisted.
func (s *TaskService) Add(ctx context.Context, title string) (task.Task, bool) {
	if strings.TrimSpace(title) == "" {
		s.log.Debug().Ctx(ctx).Msg("add ignored: blank title")
		return task.Task{}, false
	}

	t, ok := task.New(s.ids.Generate(), title, s.now().UnixMilli())
	if !ok {
		return task.Task{}, false
	}

	s.commit(logging.WithTaskID(ctx, t.ID), s.tasks.Prepend(t), "task added")
	return t, true
}

// Toggle inverts the completion flag of the task with the given id. It
// reports false, without persisting, when no task matches.
func (s *TaskService) Toggle(ctx context.Context, id string) bool {
	ctx = logging.WithTaskID(ctx, id)

	next, ok := s.tasks.Toggle(id)
	if !ok {
		s.log.Debug().Ctx(ctx).Msg("toggle ignored: no such task")
		return false
	}

	s.commit(ctx, next, "task toggled")
	return true
}

// Delete removes the task with the given id. It reports false, without
// persisting, when no task matches.
func (s *TaskService) Delete(ctx context.Context, id string) bool {
	ctx = logging.WithTaskID(ctx, id)

	next, ok := s.tasks.Delete(id)
	if !ok {
		s.log.Debug().Ctx(ctx).Msg("delete ignored: no such task")
		return false
	}

	s.commit(ctx, next, "task deleted")
	return true
}

// ClearCompleted removes every completed task and returns how many were
// removed. Nothing is persisted when none were completed.
func (s *TaskService) ClearCompleted(ctx context.Context) int {
	next, removed := s.tasks.ClearCompleted()
	if removed == 0 {
		s.log.Debug().Ctx(ctx).Msg("clear ignored: nothing completed")
		return 0
	}

	s.commit(ctx, next, "completed tasks cleared")
	return removed
}

// Import decodes raw with the storage decoder and appends the tasks whose
// ids are not already present. It returns the number of tasks added.
func (s *TaskService) Import(ctx context.Context, raw []byte) int {
	incoming := taskstore.Decode(raw, s.ids, s.now)

	fresh := make(task.List, 0, len(incoming))
	for _, t := range incoming {
		if s.tasks.Index(t.ID) >= 0 {
			continue
		}
		fresh = append(fresh, t)
	}

	if len(fresh) == 0 {
		s.log.Debug().Ctx(ctx).Int("decoded", len(incoming)).Msg("import added nothing")
		return 0
	}

	s.commit(ctx, s.tasks.Append(fresh...), "tasks imported")
	return len(fresh)
}

// RemainingCount returns the number of incomplete tasks.
func (s *TaskService) RemainingCount() int {
	return task.RemainingCount(s.tasks)
}

// HasCompleted reports whether clear-completed would remove anything.
func (s *TaskService) HasCompleted() bool {
	return task.HasCompleted(s.tasks)
}

// View derives the presentation state for a filter and title pattern.
func (s *TaskService) View(f task.Filter, pattern string) (task.View, error) {
	return task.BuildView(s.tasks, f, pattern)
}

func (s *TaskService) commit(ctx context.Context, next task.List, msg string) {
	s.tasks = next
	s.store.Save(ctx, next)
	s.log.Debug().Ctx(ctx).Int("count", len(next)).Msg(msg)
}
