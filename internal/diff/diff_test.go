package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uicontracts/uic/internal/model"
)

func manifestOf(elements ...model.NamedElement) *model.Manifest {
	return &model.Manifest{SchemaVersion: model.SchemaVersion, Elements: elements}
}

func el(id string, typ model.ElementType, file string, line int) model.NamedElement {
	return model.NamedElement{RawElement: model.RawElement{Type: typ, FilePath: file, Line: line}, AgentID: id}
}

func TestDiff_Added(t *testing.T) {
	a := manifestOf()
	b := manifestOf(el("click.button", model.Button, "App.tsx", 2))

	result := Diff(a, b)
	assert.Len(t, result.Changes, 1)
	assert.Equal(t, model.Added, result.Changes[0].Kind)
	assert.Equal(t, model.Additive, result.Changes[0].Category)
	assert.False(t, result.Breaking)
}

func TestDiff_RemovedIsBreaking(t *testing.T) {
	a := manifestOf(el("click.button", model.Button, "App.tsx", 2))
	b := manifestOf()

	result := Diff(a, b)
	assert.Len(t, result.Changes, 1)
	assert.Equal(t, model.Removed, result.Changes[0].Kind)
	assert.Equal(t, model.Breaking, result.Changes[0].Category)
	assert.True(t, result.Breaking)
}

func TestDiff_TypeChangeIsBreaking(t *testing.T) {
	a := manifestOf(el("click.button", model.Button, "App.tsx", 2))
	b := manifestOf(el("click.button", model.Anchor, "App.tsx", 2))

	result := Diff(a, b)
	require := result.Changes[0]
	assert.Equal(t, model.Modified, require.Kind)
	assert.Equal(t, model.Breaking, require.Category)
}

func TestDiff_LineShiftIsNeutral(t *testing.T) {
	a := manifestOf(el("click.button", model.Button, "App.tsx", 2))
	b := manifestOf(el("click.button", model.Button, "App.tsx", 20))

	result := Diff(a, b)
	assert.Len(t, result.Changes, 1)
	assert.Equal(t, model.Neutral, result.Changes[0].Category)
}

func TestDiff_NoChangeProducesNoEntry(t *testing.T) {
	a := manifestOf(el("click.button", model.Button, "App.tsx", 2))
	b := manifestOf(el("click.button", model.Button, "App.tsx", 2))

	result := Diff(a, b)
	assert.Empty(t, result.Changes)
}

func TestDiff_RenameHeuristicMatchesNearbyUniqueElement(t *testing.T) {
	before := el("old.button", model.Button, "App.tsx", 10)
	before.Handler = "handleSave"
	before.Label = "Save"
	after := el("new.button", model.Button, "App.tsx", 12)
	after.Handler = "handleSave"
	after.Label = "Save"

	result := Diff(manifestOf(before), manifestOf(after))
	assert.Len(t, result.Changes, 1)
	assert.Equal(t, model.Modified, result.Changes[0].Kind)
	assert.Equal(t, model.Breaking, result.Changes[0].Category)
	assert.Equal(t, "new.button", result.Changes[0].AgentID)
}

func TestDiff_SummaryCounts(t *testing.T) {
	a := manifestOf(
		el("removed.button", model.Button, "App.tsx", 1),
		el("unchanged.button", model.Button, "App.tsx", 5),
	)
	b := manifestOf(
		el("unchanged.button", model.Button, "App.tsx", 5),
		el("added.button", model.Button, "App.tsx", 9),
	)

	result := Diff(a, b)
	assert.Equal(t, 1, result.Summary.Breaking)
	assert.Equal(t, 1, result.Summary.Additive)
	assert.Equal(t, 0, result.Summary.Neutral)
}
