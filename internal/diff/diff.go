// Package diff implements the manifest-diff stage: a semantic comparison of
// two manifests classifying changes as breaking, additive, or neutral,
// keyed by agent id.
package diff

import (
	"sort"

	"github.com/uicontracts/uic/internal/model"
)

// Summary counts changes per category.
type Summary struct {
	Breaking int
	Additive int
	Neutral  int
}

// Result is the full output of a manifest diff.
type Result struct {
	Changes  []model.ChangeEntry
	Summary  Summary
	Breaking bool
}

// Diff compares manifest a (old) against b (new).
func Diff(a, b *model.Manifest) *Result {
	byIDB := indexByID(b.Elements)

	matchedB := map[string]bool{}
	var changes []model.ChangeEntry
	var unresolved []model.NamedElement

	// Pass 1: resolve every direct agent-id match first, over a.Elements
	// (manifest order rather than a map keyed by id — map iteration order is
	// randomized and would make pass 2 nondeterministic). This has to fully
	// complete before any rename guessing starts: otherwise an element
	// that's actually unchanged could get claimed as a rename target by an
	// unrelated removed element processed earlier in the same pass.
	for _, before := range a.Elements {
		after, ok := byIDB[before.AgentID]
		if !ok {
			unresolved = append(unresolved, before)
			continue
		}
		matchedB[before.AgentID] = true
		if entry, changed := compare(before, after); changed {
			changes = append(changes, entry)
		}
	}

	// Pass 2: the rename heuristic only ever considers B elements left
	// over after every direct match has already been claimed.
	for _, before := range unresolved {
		if renamed, newID := findRename(before, byIDB, matchedB); renamed {
			matchedB[newID] = true
			after := byIDB[newID]
			changes = append(changes, model.ChangeEntry{
				Kind: model.Modified, AgentID: newID,
				Before: ptr(before), After: ptr(after), Category: model.Breaking,
			})
			continue
		}
		changes = append(changes, model.ChangeEntry{
			Kind: model.Removed, AgentID: before.AgentID, Before: ptr(before), Category: model.Breaking,
		})
	}

	for _, after := range b.Elements {
		if matchedB[after.AgentID] {
			continue
		}
		changes = append(changes, model.ChangeEntry{
			Kind: model.Added, AgentID: after.AgentID, After: ptr(after), Category: model.Additive,
		})
	}

	sortChanges(changes)

	result := &Result{Changes: changes}
	for _, c := range changes {
		switch c.Category {
		case model.Breaking:
			result.Summary.Breaking++
			result.Breaking = true
		case model.Additive:
			result.Summary.Additive++
		case model.Neutral:
			result.Summary.Neutral++
		}
	}
	return result
}

func indexByID(elements []model.NamedElement) map[string]model.NamedElement {
	out := make(map[string]model.NamedElement, len(elements))
	for _, el := range elements {
		out[el.AgentID] = el
	}
	return out
}

func ptr(el model.NamedElement) *model.NamedElement { return &el }

// compare classifies a modified pair. changed is false when before and
// after are identical (no change is reported at all).
func compare(before, after model.NamedElement) (model.ChangeEntry, bool) {
	entry := model.ChangeEntry{Kind: model.Modified, AgentID: before.AgentID, Before: ptr(before), After: ptr(after)}

	switch {
	case before.Type != after.Type:
		entry.Category = model.Breaking
	case before.FilePath != after.FilePath || before.Route != after.Route || before.ComponentName != after.ComponentName:
		entry.Category = model.Neutral
	case before.Label != after.Label || before.Handler != after.Handler || !attrsEqual(before.Attributes, after.Attributes):
		entry.Category = model.Neutral
	case before.Line != after.Line || before.Column != after.Column:
		entry.Category = model.Neutral
	default:
		return entry, false
	}
	return entry, true
}

func attrsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// findRename implements the secondary-key rename heuristic: an id in A with
// no id match in B is reported as a rename iff a unique element in B (not
// already matched) shares filePath, type, handler, and label, with line
// within ±5.
func findRename(before model.NamedElement, byIDB map[string]model.NamedElement, matchedB map[string]bool) (bool, string) {
	var candidates []string
	for id, after := range byIDB {
		if matchedB[id] {
			continue
		}
		if after.FilePath != before.FilePath || after.Type != before.Type ||
			after.Handler != before.Handler || after.Label != before.Label {
			continue
		}
		if abs(after.Line-before.Line) > 5 {
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 1 {
		return true, candidates[0]
	}
	return false, ""
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sortChanges(changes []model.ChangeEntry) {
	rank := func(c model.ChangeCategory) int {
		switch c {
		case model.Breaking:
			return 0
		case model.Additive:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(changes, func(i, j int) bool {
		ri, rj := rank(changes[i].Category), rank(changes[j].Category)
		if ri != rj {
			return ri < rj
		}
		return changes[i].AgentID < changes[j].AgentID
	})
}
