package annotate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uicontracts/uic/internal/model"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func oneButton() model.NamedElement {
	return model.NamedElement{
		RawElement: model.RawElement{Type: model.Button, FilePath: "App.tsx", Line: 2, Column: 10},
		AgentID:    "click.button",
	}
}

func TestAnnotate_DryRunDoesNotMutate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "App.tsx", "export function App() {\n  return <button onClick={h}>Save</button>\n}\n")
	original, _ := os.ReadFile(path)

	result, err := Annotate(dir, []model.NamedElement{oneButton()}, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalApplied)
	assert.Empty(t, result.BackupDir)

	after, _ := os.ReadFile(path)
	assert.Equal(t, original, after)
}

func TestAnnotate_WriteInsertsAttributeAndBacksUp(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "App.tsx", "export function App() {\n  return <button onClick={h}>Save</button>\n}\n")

	result, err := Annotate(dir, []model.NamedElement{oneButton()}, Options{Write: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalApplied)
	assert.NotEmpty(t, result.BackupDir)

	after, _ := os.ReadFile(path)
	assert.Contains(t, string(after), `data-agent-id="click.button"`)

	backup, err := os.ReadFile(filepath.Join(dir, result.BackupDir, "App.tsx"))
	require.NoError(t, err)
	assert.NotContains(t, string(backup), "data-agent-id")
}

func TestAnnotate_IdempotentOnSecondRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App.tsx", "export function App() {\n  return <button onClick={h}>Save</button>\n}\n")

	_, err := Annotate(dir, []model.NamedElement{oneButton()}, Options{Write: true})
	require.NoError(t, err)

	result, err := Annotate(dir, []model.NamedElement{oneButton()}, Options{Write: true})
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalApplied)
	assert.Equal(t, 1, result.TotalSkipped)
}

func TestAnnotate_ReplacesStaleAgentID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App.tsx", `export function App() {
  return <button data-agent-id="old.button" onClick={h}>Save</button>
}
`)
	el := oneButton()
	el.AgentID = "new.button"

	result, err := Annotate(dir, []model.NamedElement{el}, Options{Write: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalApplied)

	after, _ := os.ReadFile(filepath.Join(dir, "App.tsx"))
	assert.Contains(t, string(after), `data-agent-id="new.button"`)
	assert.NotContains(t, string(after), "old.button")
}

func TestAnnotate_OffsetDriftSkipsWithWarning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App.tsx", "export function App() {\n  return null\n}\n")

	result, err := Annotate(dir, []model.NamedElement{oneButton()}, Options{DryRun: true})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	require.NotEmpty(t, result.Files[0].Warnings)
	assert.Equal(t, "ANNOTATION_MISMATCH", result.Files[0].Warnings[0].Code)
}
