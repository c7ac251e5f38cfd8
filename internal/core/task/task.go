// Package task defines the task record and the pure operations on an
// ordered task list. Every operation returns a new slice; the receiver is
// never modified.
package task

import (
	"strings"
	"time"
)

// Task is a single to-do record. Tasks are values: operations replace whole
// records instead of editing them.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"` // epoch milliseconds
}

// Created returns CreatedAt as a time.Time.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// New builds an incomplete task from a raw title. It returns false when the
// trimmed title is empty.
func New(id, title string, createdAt int64) (Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, false
	}

	return Task{
		ID:        id,
		Title:     title,
		Completed: false,
		CreatedAt: createdAt,
	}, true
}

// List is an ordered task list. Newest tasks come first.
type List []Task

// Clone returns a copy of l that shares no backing array with it.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Index returns the position of the task with the given id, or -1.
func (l List) Index(id string) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with the given id.
func (l List) Find(id string) (Task, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Task{}, false
}

// Prepend returns a new list with t as the first element.
func (l List) Prepend(t Task) List {
	out := make(List, 0, len(l)+1)
	out = append(out, t)
	return append(out, l...)
}

// Append returns a new list with ts after the existing tasks.
func (l List) Append(ts ...Task) List {
	out := make(List, 0, len(l)+len(ts))
	out = append(out, l...)
	return append(out, ts...)
}

// Toggle returns a new list where the task with the given id has its
// completion flag inverted. It returns false and the list unchanged on a miss.
func (l List) Toggle(id string) (List, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}

	out := l.Clone()
	t := out[i]
	t.Completed = !t.Completed
	out[i] = t
	return out, true
}

// Delete returns a new list without the task with the given id. The order of
// the remaining tasks is preserved.
func (l List) Delete(id string) (List, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}

	out := make(List, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), true
}

// ClearCompleted returns a new list without completed tasks and the number
// of tasks removed.
func (l List) ClearCompleted() (List, int) {
	out := make(List, 0, len(l))
	for _, t := range l {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out, len(l) - len(out)
}

// Titles returns the titles of l in order.
func (l List) Titles() []string {
	titles := make([]string, len(l))
	for i, t := range l {
		titles[i] = t.Title
	}
	return titles
}
