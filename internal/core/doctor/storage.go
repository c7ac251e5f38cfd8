package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/tick/internal/core/kv"
	"github.com/colonyops/tick/internal/core/taskstore"
)

// maxProblems caps the schema problems listed in the report.
const maxProblems = 5

// StorageProbe describes the opened store.
type StorageProbe struct {
	KV       kv.KV
	Backend  string
	Location string
	OpenErr  error // set when the preferred backend failed to open
}

// StorageCheck inspects the store and the persisted task payload without
// modifying either.
type StorageCheck struct {
	probe StorageProbe
}

// NewStorageCheck creates a new storage check.
func NewStorageCheck(probe StorageProbe) *StorageCheck {
	return &StorageCheck{probe: probe}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	backend := CheckItem{Label: "Backend", Status: StatusPass, Detail: fmt.Sprintf("%s (%s)", c.probe.Backend, c.probe.Location)}
	switch {
	case c.probe.OpenErr != nil:
		backend.Status = StatusWarn
		backend.Detail = fmt.Sprintf("%s, changes will not be saved: %v", c.probe.Backend, c.probe.OpenErr)
	case c.probe.KV == nil:
		backend.Status = StatusFail
		backend.Detail = "no store configured"
		result.Items = append(result.Items, backend)
		return result
	}
	result.Items = append(result.Items, backend)

	has, err := c.probe.KV.Has(ctx, taskstore.StorageKey)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: taskstore.StorageKey, Status: StatusFail, Detail: err.Error()})
		return result
	}
	if !has {
		result.Items = append(result.Items, CheckItem{Label: taskstore.StorageKey, Status: StatusPass, Detail: "not set, starts empty"})
		return result
	}

	entry, err := c.probe.KV.GetRaw(ctx, taskstore.StorageKey)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: taskstore.StorageKey, Status: StatusFail, Detail: err.Error()})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  taskstore.StorageKey,
		Status: StatusPass,
		Detail: fmt.Sprintf("%d bytes, updated %s", len(entry.Value), entry.UpdatedAt.Format("2006-01-02 15:04:05")),
	})

	return appendPayloadItems(result, taskstore.Check(entry.Value))
}

func appendPayloadItems(result Result, report taskstore.Report) Result {
	switch {
	case !report.ValidJSON:
		result.Items = append(result.Items, CheckItem{Label: "Payload", Status: StatusFail, Detail: "not valid JSON, loads as an empty list"})
		return result
	case !report.IsArray:
		result.Items = append(result.Items, CheckItem{Label: "Payload", Status: StatusFail, Detail: "not a JSON array, loads as an empty list"})
		return result
	}

	payload := CheckItem{Label: "Payload", Status: StatusPass, Detail: "matches schema"}
	if len(report.Problems) > 0 {
		shown := report.Problems
		if len(shown) > maxProblems {
			shown = shown[:maxProblems]
		}
		payload.Status = StatusWarn
		payload.Detail = fmt.Sprintf("%d schema problem(s): %s", len(report.Problems), strings.Join(shown, "; "))
	}
	result.Items = append(result.Items, payload)

	records := CheckItem{
		Label:  "Records",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d stored, %d kept", report.Records, report.Kept),
	}
	if report.Dropped > 0 || report.DuplicateIDs > 0 {
		records.Status = StatusWarn
		records.Detail = fmt.Sprintf("%d stored, %d kept, %d dropped, %d duplicate id(s) reassigned",
			report.Records, report.Kept, report.Dropped, report.DuplicateIDs)
	}
	result.Items = append(result.Items, records)

	return result
}
