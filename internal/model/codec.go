package model

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/uicontracts/uic/internal/uicerr"
)

// WriteManifest serializes m to a bit-stable format: UTF-8, LF line endings,
// 2-space indent, trailing newline, keys in declaration order
// (encoding/json already emits struct fields in the order they are declared,
// so no alphabetical reordering is involved).
func WriteManifest(w io.Writer, m *Manifest) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return uicerr.Wrap(uicerr.Unknown, err, "encode manifest")
	}
	// json.Encoder.Encode already appends a trailing "\n"; normalize any
	// CRLF a platform writer might have introduced upstream.
	out := bytes.ReplaceAll(buf.Bytes(), []byte("\r\n"), []byte("\n"))
	_, err := w.Write(out)
	return err
}

// WriteManifestFile writes m to path using WriteManifest.
func WriteManifestFile(path string, m *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return uicerr.Wrap(uicerr.FileWriteError, err, "create manifest file", "path", path)
	}
	defer f.Close()
	return WriteManifest(f, m)
}

// ReadManifest parses and validates a manifest. Only SchemaVersion "1.0" is
// accepted; anything else is MANIFEST_VERSION_UNSUPPORTED.
func ReadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, uicerr.Wrap(uicerr.ManifestInvalid, err, "decode manifest")
	}
	if m.SchemaVersion != SchemaVersion {
		return nil, uicerr.New(uicerr.ManifestVersionUnsupported,
			"unsupported manifest schema version", "version", m.SchemaVersion)
	}
	seen := make(map[string]struct{}, len(m.Elements))
	for _, el := range m.Elements {
		if _, dup := seen[el.AgentID]; dup {
			return nil, uicerr.New(uicerr.DuplicateAgentID,
				"duplicate agentId in manifest", "agentId", el.AgentID)
		}
		seen[el.AgentID] = struct{}{}
	}
	return &m, nil
}

// ReadManifestFile loads and validates a manifest from disk.
func ReadManifestFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, uicerr.Wrap(uicerr.ManifestNotFound, err, "manifest not found", "path", path)
		}
		return nil, uicerr.Wrap(uicerr.FileReadError, err, "read manifest file", "path", path)
	}
	defer f.Close()
	return ReadManifest(f)
}
