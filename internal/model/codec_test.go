package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uicontracts/uic/internal/uicerr"
)

func sampleManifest() *Manifest {
	return &Manifest{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   "2026-07-30T00:00:00Z",
		Generator:     GeneratorInfo{Name: "uic", Version: "dev"},
		Metadata: ManifestMetadata{
			Framework:          "app-router",
			ProjectRoot:        ".",
			FilesScanned:       2,
			ElementsDiscovered: 1,
		},
		Elements: []NamedElement{
			{
				RawElement: RawElement{
					Type: Button, FilePath: "App.tsx", Line: 2, Column: 10,
					Handler: "handleSave", Label: "Save",
				},
				AgentID: "save.button",
			},
		},
	}
}

func TestWriteManifest_IsBitStable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteManifest(&buf, sampleManifest()))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"), "output must end in a trailing newline")
	assert.NotContains(t, out, "\r\n", "output must use LF line endings only")
	assert.Contains(t, out, "\n  \"schemaVersion\"", "top-level keys indented by two spaces")

	// Keys appear in struct declaration order, not alphabetical order.
	idx := func(key string) int { return strings.Index(out, `"`+key+`"`) }
	assert.Less(t, idx("schemaVersion"), idx("generatedAt"))
	assert.Less(t, idx("generatedAt"), idx("generator"))
	assert.Less(t, idx("generator"), idx("metadata"))
	assert.Less(t, idx("metadata"), idx("elements"))
}

func TestWriteManifest_Deterministic(t *testing.T) {
	m := sampleManifest()

	var a, b bytes.Buffer
	require.NoError(t, WriteManifest(&a, m))
	require.NoError(t, WriteManifest(&b, m))
	assert.Equal(t, a.String(), b.String())
}

func TestManifestRoundTrip(t *testing.T) {
	m := sampleManifest()

	var buf bytes.Buffer
	require.NoError(t, WriteManifest(&buf, m))

	got, err := ReadManifest(&buf)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestReadManifest_RejectsUnsupportedVersion(t *testing.T) {
	r := strings.NewReader(`{"schemaVersion":"2.0","elements":[]}`)
	_, err := ReadManifest(r)
	require.Error(t, err)
	assert.True(t, uicerr.Is(err, uicerr.ManifestVersionUnsupported))
}

func TestReadManifest_RejectsDuplicateAgentID(t *testing.T) {
	r := strings.NewReader(`{
		"schemaVersion": "1.0",
		"elements": [
			{"type": "button", "filePath": "App.tsx", "line": 1, "column": 1, "agentId": "dup.button"},
			{"type": "button", "filePath": "App.tsx", "line": 5, "column": 1, "agentId": "dup.button"}
		]
	}`)
	_, err := ReadManifest(r)
	require.Error(t, err)
	assert.True(t, uicerr.Is(err, uicerr.DuplicateAgentID))
}

func TestReadManifest_RejectsMalformedJSON(t *testing.T) {
	r := strings.NewReader(`{"schemaVersion": `)
	_, err := ReadManifest(r)
	require.Error(t, err)
	assert.True(t, uicerr.Is(err, uicerr.ManifestInvalid))
}

func TestReadManifestFile_MissingFileIsManifestNotFound(t *testing.T) {
	_, err := ReadManifestFile(t.TempDir() + "/does-not-exist.json")
	require.Error(t, err)
	assert.True(t, uicerr.Is(err, uicerr.ManifestNotFound))
}

func TestWriteAndReadManifestFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/manifest.json"
	m := sampleManifest()

	require.NoError(t, WriteManifestFile(path, m))

	got, err := ReadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}
