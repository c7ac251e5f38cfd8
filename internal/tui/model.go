// Package tui implements the Bubble Tea TUI for tick.
package tui

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tick/internal/core/styles"
	"github.com/colonyops/tick/internal/core/task"
	"github.com/colonyops/tick/internal/tick"
)

// Placeholder is the composer hint shown while the input is empty.
const Placeholder = "Add a todo…"

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// Options configures the TUI behavior.
type Options struct {
	Filter       task.Filter // initial filter, defaults to all
	ConfirmClear bool        // ask before clearing completed tasks
}

// Model is the main Bubble Tea model. All task state lives in the
// TaskService; the model only tracks focus, cursor and filter.
type Model struct {
	ctx  context.Context
	svc  *tick.TaskService
	keys keyMap

	input        textinput.Model
	focus        focusArea
	filter       task.Filter
	cursor       int
	confirmClear bool
	modal        Modal

	width    int
	height   int
	quitting bool
}

// New creates a model over svc with the composer focused.
func New(ctx context.Context, svc *tick.TaskService, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = ""
	ti.SetWidth(40)

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)
	ti.Focus()

	filter := opts.Filter
	if !filter.IsValid() {
		filter = task.FilterAll
	}

	return Model{
		ctx:          ctx,
		svc:          svc,
		keys:         defaultKeyMap(),
		input:        ti,
		focus:        focusInput,
		filter:       filter,
		confirmClear: opts.ConfirmClear,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(m.contentWidth()-4, 10))
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == keyCtrlC {
		return m.quit()
	}

	if m.modal.Visible() {
		return m.handleConfirmModalKey(keyStr)
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		// A blank title leaves the draft untouched.
		if _, ok := m.svc.Add(m.ctx, m.input.Value()); ok {
			m.input.Reset()
			m.cursor = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.Blur):
		m.focusList()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	v := m.currentView()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(v.Rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(v); ok {
			m.svc.Toggle(m.ctx, t.ID)
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(v); ok {
			m.svc.Delete(m.ctx, t.ID)
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Clear):
		if !v.CanClear {
			return m, nil
		}
		if m.confirmClear {
			done := v.Total - v.Remaining
			m.modal = NewModal("Clear completed", fmt.Sprintf("Remove %d completed %s?", done, plural(done, "task", "tasks")))
			return m, nil
		}
		m.svc.ClearCompleted(m.ctx)
		m.clampCursor()
	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.clampCursor()
	case key.Matches(msg, m.keys.Focus):
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}

	return m, nil
}

func (m Model) handleConfirmModalKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		if m.modal.ConfirmSelected() {
			m.svc.ClearCompleted(m.ctx)
			m.clampCursor()
		}
		m.modal = Modal{}
	case keyEsc:
		m.modal = Modal{}
	case "left", "right", "h", "l", keyTab:
		m.modal.ToggleSelection()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.clampCursor()
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

// currentView derives the rows for the active filter. An empty pattern
// cannot fail to compile.
func (m Model) currentView() task.View {
	v, _ := m.svc.View(m.filter, "")
	return v
}

func (m Model) selected(v task.View) (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(v.Rows) {
		return task.Task{}, false
	}
	return v.Rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.currentView().Rows)
	m.cursor = max(min(m.cursor, n-1), 0)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
