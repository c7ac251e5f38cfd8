// Package output renders tasks as plain CLI text.
package output

import (
	"fmt"
	"io"

	"github.com/colonyops/tick/internal/core/styles"
	"github.com/colonyops/tick/internal/core/task"
)

// Empty-state copy shared with the TUI.
const (
	EmptyTitle    = "No todos yet"
	EmptySubtitle = "Add your first task above."
	NoMatches     = "No tasks match this filter"
)

// Checkbox returns the glyph for a completion state.
func Checkbox(completed bool) string {
	if completed {
		return styles.CheckboxDone
	}
	return styles.CheckboxOpen
}

// Row formats a task with its 1-based position in the full list.
func Row(position int, t task.Task) string {
	return fmt.Sprintf("%4d  %s %s", position, Checkbox(t.Completed), t.Title)
}

// Remaining formats the remaining-count line.
func Remaining(n int) string {
	return fmt.Sprintf("%d remaining", n)
}

// WriteView writes the rows of v, numbered by their position in all, followed
// by the remaining count. Positions refer to all so they can be passed back
// as task references even when v is filtered.
func WriteView(w io.Writer, all task.List, v task.View) error {
	if v.Empty {
		_, err := fmt.Fprintf(w, "%s\n%s\n", EmptyTitle, EmptySubtitle)
		return err
	}

	if len(v.Rows) == 0 {
		if _, err := fmt.Fprintln(w, NoMatches); err != nil {
			return err
		}
	}

	for _, t := range v.Rows {
		if _, err := fmt.Fprintln(w, Row(all.Index(t.ID)+1, t)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%s\n", Remaining(v.Remaining))
	return err
}
