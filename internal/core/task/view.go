package task

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter selects which tasks a view displays.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

var filterOrder = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter parses a filter name. The empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return FilterAll, fmt.Errorf("invalid filter %q: must be one of all, active, completed", s)
	}
	return f, nil
}

// IsValid reports whether f is a known filter.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, v := range filterOrder {
		if v == f {
			return filterOrder[(i+1)%len(filterOrder)]
		}
	}
	return FilterAll
}

// Apply returns the tasks of l selected by f, in list order.
func (f Filter) Apply(l List) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		switch f {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// RemainingCount returns the number of tasks not yet completed.
func RemainingCount(l List) int {
	n := 0
	for _, t := range l {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletedCount returns the number of completed tasks.
func CompletedCount(l List) int {
	return len(l) - RemainingCount(l)
}

// HasCompleted reports whether any task in l is completed.
func HasCompleted(l List) bool {
	for _, t := range l {
		if t.Completed {
			return true
		}
	}
	return false
}

// Match returns the tasks whose title matches the glob pattern,
// case-insensitively. A pattern without glob metacharacters matches as a
// substring. An empty pattern matches everything.
func Match(l List, pattern string) (List, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return l.Clone(), nil
	}
	if !strings.ContainsAny(pattern, "*?[{") {
		pattern = "*" + pattern + "*"
	}
	pattern = flattenSeparators(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid match pattern %q", pattern)
	}

	out := make(List, 0, len(l))
	for _, t := range l {
		ok, err := doublestar.Match(pattern, flattenSeparators(strings.ToLower(t.Title)))
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// View is the derived presentation state of a task list.
type View struct {
	Rows      List   // tasks to display, in list order
	Filter    Filter // filter that produced Rows
	Total     int    // tasks in the full list
	Remaining int    // incomplete tasks in the full list
	CanClear  bool   // at least one task is completed
	Empty     bool   // the full list has no tasks
}

// BuildView derives the view of l for the given filter and match pattern.
// Counts always describe the full list, not the displayed rows.
func BuildView(l List, f Filter, pattern string) (View, error) {
	rows, err := Match(f.Apply(l), pattern)
	if err != nil {
		return View{}, err
	}

	return View{
		Rows:      rows,
		Filter:    f,
		Total:     len(l),
		Remaining: RemainingCount(l),
		CanClear:  HasCompleted(l),
		Empty:     len(l) == 0,
	}, nil
}

// flattenSeparators hides '/' from doublestar so that '*' also spans slashes
// in titles.
func flattenSeparators(s string) string {
	return strings.ReplaceAll(s, "/", "\x1f")
}
