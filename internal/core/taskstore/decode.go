package taskstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strings"
	"time"

	"github.com/colonyops/tick/internal/core/ident"
	"github.com/colonyops/tick/internal/core/task"
)

// Decode parses a stored payload into a valid task list. It never fails:
// anything other than a JSON array yields an empty list, elements that are
// not objects or have a blank title are dropped, and the remaining fields
// are coerced (see decodeRecord).
func Decode(raw []byte, ids ident.IDGenerator, now func() time.Time) task.List {
	elems, ok := decodeArray(raw)
	if !ok {
		return task.List{}
	}

	out := make(task.List, 0, len(elems))
	seen := make(map[string]struct{}, len(elems))
	for _, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}

		t, ok := decodeRecord(obj, now)
		if !ok {
			continue
		}

		if _, dup := seen[t.ID]; t.ID == "" || dup {
			t.ID = ids.Generate()
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}

	return out
}

// decodeArray parses raw as exactly one JSON array. Trailing data after the
// array makes the whole payload invalid.
func decodeArray(raw []byte) ([]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}

	arr, ok := v.([]any)
	return arr, ok
}

// decodeRecord coerces a single stored object. It returns false when the
// title is blank. The id may be empty; Decode assigns one.
func decodeRecord(obj map[string]any, now func() time.Time) (task.Task, bool) {
	id, _ := obj["id"].(string)
	title, _ := obj["title"].(string)

	title = strings.TrimSpace(title)
	if title == "" {
		return task.Task{}, false
	}

	createdAt, ok := toMillis(obj["createdAt"])
	if !ok {
		createdAt = now().UnixMilli()
	}

	return task.Task{
		ID:        id,
		Title:     title,
		Completed: truthy(obj["completed"]),
		CreatedAt: createdAt,
	}, true
}

// truthy reports whether v would be true in a boolean context of the
// browser app that wrote the payload. Only false, null, zero, and the empty
// string are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			// out of float range: a huge nonzero magnitude
			return true
		}
		return f != 0
	default:
		return true
	}
}

// toMillis converts a JSON number to epoch milliseconds, truncating any
// fraction. Non-numbers and values outside int64 are rejected.
func toMillis(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	if i, err := n.Int64(); err == nil {
		return i, true
	}

	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
