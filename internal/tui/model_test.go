package tui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tick/internal/core/ident"
	"github.com/colonyops/tick/internal/core/kv"
	"github.com/colonyops/tick/internal/core/task"
	"github.com/colonyops/tick/internal/core/taskstore"
	"github.com/colonyops/tick/internal/data/stores"
	"github.com/colonyops/tick/internal/tick"
	"github.com/colonyops/tick/pkg/tuitest"
)

func newService(t *testing.T, store kv.KV) *tick.TaskService {
	t.Helper()
	ids := ident.New()
	svc := tick.NewTaskService(taskstore.New(store, ids, zerolog.Nop()), ids, zerolog.Nop())
	svc.Load(context.Background())
	return svc
}

// newTestModel seeds titles in order; the list shows them newest first.
func newTestModel(t *testing.T, opts Options, titles ...string) Model {
	t.Helper()
	svc := newService(t, stores.NewMemoryKVStore())
	for _, title := range titles {
		_, ok := svc.Add(context.Background(), title)
		require.True(t, ok)
	}
	return New(context.Background(), svc, opts)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func titles(m Model) []string {
	return m.svc.Tasks().Titles()
}

func TestModel_AddClearsInputAndKeepsFocus(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(m, tuitest.Type("Buy milk")...)
	assert.Equal(t, "Buy milk", m.input.Value())

	m = send(m, tuitest.KeyEnter())
	assert.Equal(t, []string{"Buy milk"}, titles(m))
	assert.Empty(t, m.input.Value())
	assert.Equal(t, focusInput, m.focus)
	assert.True(t, m.input.Focused())

	m = send(m, tuitest.Type("Walk dog")...)
	m = send(m, tuitest.KeyEnter())
	assert.Equal(t, []string{"Walk dog", "Buy milk"}, titles(m))
}

func TestModel_BlankAddKeepsDraft(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(m, tuitest.Type("   ")...)
	m = send(m, tuitest.KeyEnter())

	assert.Empty(t, titles(m))
	assert.Equal(t, "   ", m.input.Value())
}

func TestModel_ListKeysTypedIntoInput(t *testing.T) {
	m := newTestModel(t, Options{}, "a")

	m = send(m, tuitest.Type("jkxdCfq")...)
	assert.Equal(t, "jkxdCfq", m.input.Value())
	assert.False(t, m.quitting)
	assert.Equal(t, []string{"a"}, titles(m))
}

func TestModel_FocusSwitching(t *testing.T) {
	m := newTestModel(t, Options{}, "a")

	m = send(m, tuitest.KeyTab())
	assert.Equal(t, focusList, m.focus)
	assert.False(t, m.input.Focused())

	m = send(m, tuitest.KeyPress('i'))
	assert.Equal(t, focusInput, m.focus)
	assert.True(t, m.input.Focused())

	m = send(m, tuitest.KeyEsc())
	assert.Equal(t, focusList, m.focus)

	m = send(m, tuitest.KeyTab())
	assert.Equal(t, focusInput, m.focus)

	m = send(m, tuitest.KeyDown())
	assert.Equal(t, focusList, m.focus)
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t, Options{}, "a", "b", "c")
	m = send(m, tuitest.KeyTab())
	require.Equal(t, 0, m.cursor)

	m = send(m, tuitest.KeyPress('j'), tuitest.KeyDown())
	assert.Equal(t, 2, m.cursor)

	m = send(m, tuitest.KeyPress('j'))
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")

	m = send(m, tuitest.KeyPress('k'), tuitest.KeyUp(), tuitest.KeyUp())
	assert.Equal(t, 0, m.cursor, "cursor stops at the first row")
}

func TestModel_Toggle(t *testing.T) {
	m := newTestModel(t, Options{}, "a", "b")
	m = send(m, tuitest.KeyTab(), tuitest.KeyPress('j'), tuitest.KeySpace())

	tasks := m.svc.Tasks()
	assert.False(t, tasks[0].Completed)
	assert.True(t, tasks[1].Completed)
	assert.Equal(t, 1, m.svc.RemainingCount())

	m = send(m, tuitest.KeyPress('x'))
	assert.False(t, m.svc.Tasks()[1].Completed)
	assert.Equal(t, 2, m.svc.RemainingCount())
}

func TestModel_Delete(t *testing.T) {
	m := newTestModel(t, Options{}, "a", "b", "c")
	m = send(m, tuitest.KeyTab(), tuitest.KeyPress('j'), tuitest.KeyPress('d'))
	assert.Equal(t, []string{"c", "a"}, titles(m))

	m = send(m, tuitest.KeyPress('j'), tuitest.KeyDelete())
	assert.Equal(t, []string{"c"}, titles(m))
	assert.Equal(t, 0, m.cursor, "cursor clamps after the last row is removed")

	m = send(m, tuitest.KeyPress('d'), tuitest.KeyPress('d'))
	assert.Empty(t, titles(m))
}

func TestModel_ClearCompleted(t *testing.T) {
	t.Run("inert when nothing is completed", func(t *testing.T) {
		m := newTestModel(t, Options{ConfirmClear: true}, "a", "b")
		m = send(m, tuitest.KeyTab(), tuitest.KeyPress('C'))

		assert.False(t, m.modal.Visible())
		assert.Equal(t, []string{"b", "a"}, titles(m))
	})

	t.Run("clears immediately without confirmation", func(t *testing.T) {
		m := newTestModel(t, Options{}, "a", "b")
		m = send(m, tuitest.KeyTab(), tuitest.KeySpace(), tuitest.KeyPress('C'))

		assert.False(t, m.modal.Visible())
		assert.Equal(t, []string{"a"}, titles(m))
		assert.False(t, m.svc.HasCompleted())
	})

	t.Run("confirm modal accepts", func(t *testing.T) {
		m := newTestModel(t, Options{ConfirmClear: true}, "a", "b")
		m = send(m, tuitest.KeyTab(), tuitest.KeySpace(), tuitest.KeyPress('C'))
		require.True(t, m.modal.Visible())
		assert.Equal(t, []string{"b", "a"}, titles(m), "nothing removed before confirming")

		m = send(m, tuitest.KeyEnter())
		assert.False(t, m.modal.Visible())
		assert.Equal(t, []string{"a"}, titles(m))
	})

	t.Run("confirm modal cancel button", func(t *testing.T) {
		m := newTestModel(t, Options{ConfirmClear: true}, "a", "b")
		m = send(m, tuitest.KeyTab(), tuitest.KeySpace(), tuitest.KeyPress('C'), tuitest.KeyTab(), tuitest.KeyEnter())

		assert.False(t, m.modal.Visible())
		assert.Equal(t, []string{"b", "a"}, titles(m))
	})

	t.Run("confirm modal esc", func(t *testing.T) {
		m := newTestModel(t, Options{ConfirmClear: true}, "a", "b")
		m = send(m, tuitest.KeyTab(), tuitest.KeySpace(), tuitest.KeyPress('C'), tuitest.KeyEsc())

		assert.False(t, m.modal.Visible())
		assert.Equal(t, focusList, m.focus)
		assert.Equal(t, []string{"b", "a"}, titles(m))
	})
}

func TestModel_FilterCycling(t *testing.T) {
	m := newTestModel(t, Options{}, "a", "b")
	m = send(m, tuitest.KeyTab(), tuitest.KeySpace())

	m = send(m, tuitest.KeyPress('f'))
	assert.Equal(t, task.FilterActive, m.filter)
	out := tuitest.StripANSI(m.render())
	assert.Contains(t, out, "[ ] a")
	assert.NotContains(t, out, "[x] b")

	m = send(m, tuitest.KeyPress('f'))
	assert.Equal(t, task.FilterCompleted, m.filter)
	out = tuitest.StripANSI(m.render())
	assert.Contains(t, out, "[x] b")
	assert.NotContains(t, out, "[ ] a")

	// Un-completing the only visible row empties the filtered view.
	m = send(m, tuitest.KeySpace())
	out = tuitest.StripANSI(m.render())
	assert.Contains(t, out, "No tasks match this filter")
	assert.NotContains(t, out, "No todos yet")
	assert.Equal(t, 0, m.cursor)

	m = send(m, tuitest.KeyPress('f'))
	assert.Equal(t, task.FilterAll, m.filter)
}

func TestModel_InitialFilter(t *testing.T) {
	m := newTestModel(t, Options{Filter: task.FilterCompleted})
	assert.Equal(t, task.FilterCompleted, m.filter)

	m = newTestModel(t, Options{Filter: task.Filter("bogus")})
	assert.Equal(t, task.FilterAll, m.filter)
}

func TestModel_Quit(t *testing.T) {
	t.Run("q from the list", func(t *testing.T) {
		m := newTestModel(t, Options{})
		m = send(m, tuitest.KeyTab())

		next, cmd := m.Update(tuitest.KeyPress('q'))
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
		assert.True(t, next.(Model).quitting)
	})

	t.Run("ctrl+c from the input", func(t *testing.T) {
		m := newTestModel(t, Options{})

		next, cmd := m.Update(tuitest.KeyCtrlC())
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
		assert.True(t, next.(Model).quitting)
	})

	t.Run("ctrl+c while confirming", func(t *testing.T) {
		m := newTestModel(t, Options{ConfirmClear: true}, "a")
		m = send(m, tuitest.KeyTab(), tuitest.KeySpace(), tuitest.KeyPress('C'))
		require.True(t, m.modal.Visible())

		next, _ := m.Update(tuitest.KeyCtrlC())
		assert.True(t, next.(Model).quitting)
		assert.True(t, m.svc.HasCompleted())
	})
}

func TestModel_RenderEmptyState(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, tuitest.WindowSize(80, 30))

	out := tuitest.StripANSI(m.render())
	assert.Contains(t, out, "Todo")
	assert.Contains(t, out, "Keep it simple. Stay focused.")
	assert.Contains(t, out, "0 remaining")
	assert.Contains(t, out, "Clear completed")
	assert.Contains(t, out, "No todos yet")
	assert.Contains(t, out, "Add your first task above.")
	assert.Contains(t, out, "Tip: Press Enter to add.")
}

func TestModel_RenderRows(t *testing.T) {
	m := newTestModel(t, Options{}, "Write report", "Review report")
	m = send(m, tuitest.WindowSize(80, 30), tuitest.KeyTab(), tuitest.KeyPress('j'), tuitest.KeySpace())

	out := tuitest.StripANSI(m.render())
	assert.Contains(t, out, "[ ] Review report")
	assert.Contains(t, out, "› [x] Write report")
	assert.Contains(t, out, "1 remaining")
	assert.NotContains(t, out, "No todos yet")
	assert.Contains(t, out, "C clear completed")

	m = send(m, tuitest.KeySpace())
	out = tuitest.StripANSI(m.render())
	assert.Contains(t, out, "2 remaining")
	assert.NotContains(t, out, "C clear completed", "clear help hidden while gated")
}

func TestModel_RenderScrollsWithCursor(t *testing.T) {
	seed := []string{"t01", "t02", "t03", "t04", "t05", "t06", "t07", "t08", "t09", "t10"}
	m := newTestModel(t, Options{}, seed...)
	m = send(m, tuitest.WindowSize(80, chromeHeight+3), tuitest.KeyTab())

	out := tuitest.StripANSI(m.render())
	assert.Contains(t, out, "t10")
	assert.NotContains(t, out, "t01")

	for range 9 {
		m = send(m, tuitest.KeyPress('j'))
	}
	out = tuitest.StripANSI(m.render())
	assert.Contains(t, out, "› [ ] t01")
	assert.NotContains(t, out, "t10")
}

func TestModel_MutationsPersist(t *testing.T) {
	store := stores.NewMemoryKVStore()
	m := New(context.Background(), newService(t, store), Options{})

	m = send(m, tuitest.Type("Persist me")...)
	m = send(m, tuitest.KeyEnter(), tuitest.KeyTab(), tuitest.KeySpace())

	reloaded := newService(t, store).Tasks()
	require.Len(t, reloaded, 1)
	assert.Equal(t, "Persist me", reloaded[0].Title)
	assert.True(t, reloaded[0].Completed)
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, Options{})
	v := m.View()
	assert.True(t, v.AltScreen)
}
