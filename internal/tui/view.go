package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tick/internal/core/styles"
	"github.com/colonyops/tick/internal/core/task"
	"github.com/colonyops/tick/internal/output"
)

const (
	maxContentWidth = 72
	cursorMarker    = "›"

	// rows taken by everything except the task list
	chromeHeight = 14
)

var filterTabs = []struct {
	filter task.Filter
	label  string
}{
	{task.FilterAll, "All"},
	{task.FilterActive, "Active"},
	{task.FilterCompleted, "Completed"},
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	content := m.render()
	if m.modal.Visible() {
		content = m.modal.Overlay(content, m.width, m.height)
	}

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

// render builds the full screen as a string.
func (m Model) render() string {
	v := m.currentView()

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(v),
		"",
		m.renderComposer(),
		"",
		m.renderTabs(v.Filter),
		"",
		m.renderList(v),
		"",
		m.renderFooter(v),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return maxContentWidth
	}
	return max(min(m.width-4, maxContentWidth), 20)
}

func (m Model) renderHeader(v task.View) string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Center,
		styles.TitleStyle.Render("Todo"),
		"  ",
		styles.BadgeStyle.Render(output.Remaining(v.Remaining)),
	)
	left := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		styles.SubtitleStyle.Render("Keep it simple. Stay focused."),
	)

	buttonStyle := styles.ButtonStyle
	if !v.CanClear {
		buttonStyle = styles.ButtonDisabledStyle
	}
	button := buttonStyle.Render("Clear completed")

	gap := max(m.contentWidth()-lipgloss.Width(left)-lipgloss.Width(button), 2)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), button)
}

func (m Model) renderComposer() string {
	box := styles.InputStyle
	if m.focus == focusInput {
		box = styles.InputFocusedStyle
	}
	return box.Width(m.contentWidth()).Render(m.input.View())
}

func (m Model) renderTabs(active task.Filter) string {
	parts := make([]string, 0, len(filterTabs))
	for _, tab := range filterTabs {
		style := styles.ViewNormalStyle
		if tab.filter == active {
			style = styles.ViewSelectedStyle
		}
		parts = append(parts, style.Render(tab.label))
	}
	return strings.Join(parts, styles.DividerStyle.Render(" · "))
}

func (m Model) renderList(v task.View) string {
	if v.Empty {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			styles.EmptyTitleStyle.Render(output.EmptyTitle),
			styles.EmptySubtitleStyle.Render(output.EmptySubtitle),
		)
	}
	if len(v.Rows) == 0 {
		return styles.TextMutedStyle.Render(output.NoMatches)
	}

	start, end := m.visibleRange(len(v.Rows))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(v.Rows[i], i == m.cursor && m.focus == focusList))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(t task.Task, selected bool) string {
	marker := " "
	if selected {
		marker = styles.CursorStyle.Render(cursorMarker)
	}

	checkbox := styles.CheckboxStyle.Render(styles.CheckboxOpen)
	if t.Completed {
		checkbox = styles.CheckedStyle.Render(styles.CheckboxDone)
	}

	titleStyle := styles.RowStyle
	switch {
	case t.Completed:
		titleStyle = styles.DoneTitleStyle
	case selected:
		titleStyle = styles.RowSelectedStyle
	}

	return marker + " " + checkbox + " " + titleStyle.Render(t.Title)
}

// visibleRange keeps the cursor on screen when the list is taller than the
// terminal.
func (m Model) visibleRange(n int) (int, int) {
	if m.height <= 0 {
		return 0, n
	}
	limit := max(m.height-chromeHeight, 3)
	if n <= limit {
		return 0, n
	}
	start := max(m.cursor-limit+1, 0)
	return start, min(start+limit, n)
}

func (m Model) renderFooter(v task.View) string {
	bindings := m.keys.inputHelp()
	if m.focus == focusList {
		bindings = m.keys.listHelp(v.CanClear)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.FooterStyle.Render("Tip: Press Enter to add."),
		styles.FooterStyle.Render(helpLine(bindings)),
	)
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
