package commands

import (
	"strconv"
	"strings"

	"github.com/colonyops/tick/internal/core/task"
)

// ResolveRef finds the task a command-line reference names. In order it
// tries an exact id, a 1-based position ("#2" always, "2" when no id
// matches exactly), and a unique id prefix. Anything else is a miss.
func ResolveRef(tasks task.List, ref string) (task.Task, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, false
	}

	if t, ok := tasks.Find(ref); ok {
		return t, true
	}

	if pos, isPos := position(ref); isPos {
		if pos >= 1 && pos <= len(tasks) {
			return tasks[pos-1], true
		}
		if strings.HasPrefix(ref, "#") {
			return task.Task{}, false
		}
	}

	var (
		match task.Task
		found int
	)
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			match = t
			found++
		}
	}
	if found != 1 {
		return task.Task{}, false
	}
	return match, true
}

func position(ref string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return 0, false
	}
	return n, true
}
