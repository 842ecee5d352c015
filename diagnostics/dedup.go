package diagnostics

import (
	"fmt"

	"github.com/ascendlabs/symcheck/ast"
)

// Dedup suppresses repeat checkCondition warnings that share the same (location, description) pair within a
// single root function's analysis. The front-end this checker's algorithm is grounded on does this because the
// same goal can be reached along more than one traversal path (e.g. both branches of an outer if-statement reach
// the same inlined assert); without it, the same bug is reported once per reachable path instead of once per
// source location.
type Dedup struct {
	seen map[string]bool
}

// NewDedup constructs an empty Dedup.
func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]bool)}
}

// Seen reports whether (loc, description) has already been recorded, and records it if not — so callers can
// write `if dedup.Seen(loc, desc) { return }` immediately before emitting a goal outcome.
func (d *Dedup) Seen(loc ast.SrcLocation, description string) bool {
	key := fmt.Sprintf("%d:%d:%d\x00%s", loc.Start, loc.Length, loc.File, description)
	if d.seen[key] {
		return true
	}
	d.seen[key] = true
	return false
}

// Reset clears every recorded key, per root-function analysis (§5: checker state resets between root functions).
func (d *Dedup) Reset() {
	d.seen = make(map[string]bool)
}
