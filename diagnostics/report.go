package diagnostics

import (
	"encoding/json"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/google/uuid"
)

// ReportEntry is one warning captured by a Report, given a unique ID so downstream tooling (a CI annotation step)
// can refer to an individual finding within one run's report. IDs are random and differ between runs.
type ReportEntry struct {
	ID           string          `json:"id"`
	Loc          ast.SrcLocation `json:"loc"`
	SecondaryLoc *ast.SrcLocation `json:"secondaryLoc,omitempty"`
	Message      string          `json:"message"`
}

// Report accumulates every warning an EventSink publishes into an ordered, JSON-serializable list — the
// "idempotent re-analysis" property of the governing specification's testable properties is checked by comparing
// two Reports' Entries for structural equality, ignoring ID (IDs are randomly generated per run).
type Report struct {
	Entries []ReportEntry
}

// NewReport constructs an empty Report and subscribes it to sink, so it records every warning sink emits from
// this point on.
func NewReport(sink *EventSink) *Report {
	r := &Report{}
	sink.Subscribe(func(w Warning) {
		r.Entries = append(r.Entries, ReportEntry{
			ID:           uuid.NewString(),
			Loc:          w.Loc,
			SecondaryLoc: w.SecondaryLoc,
			Message:      w.Message,
		})
	})
	return r
}

// MarshalJSON renders the report as a JSON array of entries, the format a CI step or external tool consumes.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Entries)
}

// ViolationCount reports how many entries are actual goal violations (as opposed to "might happen", unsupported,
// or solver-fault warnings), by checking for the [violation] tag the goal-check protocol prepends.
func (r *Report) ViolationCount() int {
	return r.countTagged("[violation]")
}

// UnsupportedCount reports how many entries are unsupported-construct warnings.
func (r *Report) UnsupportedCount() int {
	return r.countTagged("[unsupported]")
}

func (r *Report) countTagged(tag string) int {
	count := 0
	for _, e := range r.Entries {
		if len(e.Message) >= len(tag) && e.Message[:len(tag)] == tag {
			count++
		}
	}
	return count
}
