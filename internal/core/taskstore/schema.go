package taskstore

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/colonyops/tick/internal/core/ident"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "task-list.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// Report describes how well a stored payload matches the storage format.
type Report struct {
	ValidJSON    bool
	IsArray      bool
	Records      int      // top-level array elements
	Kept         int      // tasks Decode would return
	Dropped      int      // elements Decode would discard
	DuplicateIDs int      // ids that Decode would replace
	Problems     []string // schema violations as "<pointer>: <message>"
}

// Valid reports whether the payload conforms exactly, with nothing coerced
// or dropped.
func (r Report) Valid() bool {
	return r.ValidJSON && r.IsArray && r.Dropped == 0 && r.DuplicateIDs == 0 && len(r.Problems) == 0
}

// Check inspects raw without modifying anything.
func Check(raw []byte) Report {
	var r Report

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return r
	}
	r.ValidJSON = true

	arr, ok := v.([]any)
	if !ok {
		r.Problems = []string{"/: expected array"}
		return r
	}
	r.IsArray = true
	r.Records = len(arr)

	seen := make(map[string]struct{}, len(arr))
	for _, elem := range arr {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		id, _ := obj["id"].(string)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			r.DuplicateIDs++
		}
		seen[id] = struct{}{}
	}

	// Decode with throwaway ids; only the count matters here.
	kept := Decode(raw, ident.Func(func() string { return "" }), time.Now)
	r.Kept = len(kept)
	r.Dropped = r.Records - r.Kept

	schema, err := compileSchema()
	if err != nil {
		r.Problems = append(r.Problems, err.Error())
		return r
	}

	if err := schema.Validate(v); err != nil {
		r.Problems = append(r.Problems, schemaProblems(err)...)
	}
	return r
}

func schemaProblems(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}

	var out []string
	collectLeaves(ve, &out)
	return out
}

func collectLeaves(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}

	for _, cause := range ve.Causes {
		collectLeaves(cause, out)
	}
}
