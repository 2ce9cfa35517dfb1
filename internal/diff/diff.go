// Package diff computes the added/removed/modified decomposition between
// two claim snapshots, keyed by claim id.
package diff

import (
	"github.com/claimboard/claimboard/internal/core"
)

// FieldChange records one differing attribute between the two sides of a
// modified claim.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// ClaimDiff identifies one claim present on both sides with at least one
// differing field. Changes lists exactly the differing attributes, in the
// declared attribute order.
type ClaimDiff struct {
	ClaimID  string        `json:"claimId"`
	Current  core.Claim    `json:"current"`
	Previous core.Claim    `json:"previous"`
	Changes  []FieldChange `json:"changes"`
}

// Result is the full comparison between two snapshots. The result is owned
// by the caller and never cached.
type Result struct {
	Added    []core.Claim `json:"added"`
	Removed  []core.Claim `json:"removed"`
	Modified []ClaimDiff  `json:"modified"`
}

// Compare diffs two record sets. The first argument is the "current" side,
// the second the "previous" side: keys only in current are added, keys only
// in previous are removed, keys in both with differing attributes are
// modified. Output order follows the insertion order of the source record
// lists, so comparing the same inputs is reproducible. Comparing a set
// against itself yields an empty result.
func Compare(current, previous []core.Claim) Result {
	res := Result{
		Added:    []core.Claim{},
		Removed:  []core.Claim{},
		Modified: []ClaimDiff{},
	}

	prevByID := make(map[string]core.Claim, len(previous))
	for _, c := range previous {
		prevByID[c.ID] = c
	}
	curIDs := make(map[string]struct{}, len(current))

	for _, cur := range current {
		curIDs[cur.ID] = struct{}{}
		prev, ok := prevByID[cur.ID]
		if !ok {
			res.Added = append(res.Added, cur)
			continue
		}
		if changes := fieldChanges(cur, prev); len(changes) > 0 {
			res.Modified = append(res.Modified, ClaimDiff{
				ClaimID:  cur.ID,
				Current:  cur,
				Previous: prev,
				Changes:  changes,
			})
		}
	}

	for _, prev := range previous {
		if _, ok := curIDs[prev.ID]; !ok {
			res.Removed = append(res.Removed, prev)
		}
	}
	return res
}

// fieldChanges walks the declared claim attributes and collects those whose
// values differ. Attributes added to the registry automatically participate.
func fieldChanges(cur, prev core.Claim) []FieldChange {
	var changes []FieldChange
	for _, f := range core.Fields() {
		curVal := f.Value(&cur)
		prevVal := f.Value(&prev)
		if curVal != prevVal {
			changes = append(changes, FieldChange{
				Field:    f.Name,
				OldValue: prevVal,
				NewValue: curVal,
			})
		}
	}
	return changes
}
