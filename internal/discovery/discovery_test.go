package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uicontracts/uic/internal/model"
)

func writeSource(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover_SimpleButton(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "App.tsx", `
export function App() {
  return <button onClick={handleClick}>Save</button>
}
`)
	res, err := Discover(context.Background(), dir, Options{})
	require.NoError(t, err)
	require.Len(t, res.Elements, 1)

	el := res.Elements[0]
	assert.Equal(t, model.Button, el.Type)
	assert.Equal(t, "App", el.ComponentName)
	assert.Equal(t, "handleClick", el.Handler)
	assert.Equal(t, "Save", el.Label)
	assert.False(t, el.Conditional)
	assert.False(t, el.Dynamic)
}

func TestDiscover_ConditionalAndDynamic(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "List.tsx", `
export function List({ items, show }) {
  return (
    <div>
      {show && <button onClick={onToggle}>Toggle</button>}
      {items.map((item) => <span onClick={onPick}>{item}</span>)}
    </div>
  )
}
`)
	res, err := Discover(context.Background(), dir, Options{})
	require.NoError(t, err)
	require.Len(t, res.Elements, 2)

	byHandler := map[string]model.RawElement{}
	for _, el := range res.Elements {
		byHandler[el.Handler] = el
	}

	toggle := byHandler["onToggle"]
	assert.True(t, toggle.Conditional)
	assert.False(t, toggle.Dynamic)

	pick := byHandler["onPick"]
	assert.True(t, pick.Dynamic)
	assert.False(t, pick.Conditional)
}

func TestDiscover_GenericTagWithoutHandlerIsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "Plain.tsx", `
export function Plain() {
  return <div><span>hello</span></div>
}
`)
	res, err := Discover(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Elements)
}

func TestDiscover_MappedComponentWithoutHandlerWarns(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "Page.tsx", `
export function Page() {
  return <SubmitButton />
}
`)
	res, err := Discover(context.Background(), dir, Options{
		ComponentMap: map[string]model.ElementType{"SubmitButton": model.Button},
	})
	require.NoError(t, err)
	require.Len(t, res.Elements, 1)

	found := false
	for _, w := range res.Warnings {
		if w.Code == "MAPPED_COMPONENT_NO_HANDLER" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDiscover_RespectsExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "App.tsx", `export function App() { return <button onClick={h}>x</button> }`)
	writeSource(t, dir, "App.test.tsx", `export function App() { return <button onClick={h}>x</button> }`)
	writeSource(t, dir, "node_modules/pkg/Widget.tsx", `export function Widget() { return <button onClick={h}>x</button> }`)

	res, err := Discover(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Elements, 1)
	assert.Equal(t, 1, res.Metadata.FilesScanned)
}

func TestDiscover_InvalidRootIsScanFailed(t *testing.T) {
	_, err := Discover(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{})
	assert.Error(t, err)
}
