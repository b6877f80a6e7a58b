// Package model holds the shared data types every pipeline stage produces
// or consumes: RawElement, NamedElement, Manifest, Patch, and ChangeEntry.
// The types in this file perform no I/O; codec.go reads and writes
// manifests.
package model

// ElementType enumerates the tag kinds Discovery ever emits.
type ElementType string

const (
	Button   ElementType = "button"
	Input    ElementType = "input"
	Select   ElementType = "select"
	Textarea ElementType = "textarea"
	Anchor   ElementType = "a"
	Form     ElementType = "form"
	Div      ElementType = "div"
	Span     ElementType = "span"
	Img      ElementType = "img"
	Label    ElementType = "label"
)

// AlwaysInteractive is the tag set that is interactive regardless of props.
var AlwaysInteractive = map[ElementType]bool{
	Button: true, Input: true, Select: true, Textarea: true, Anchor: true, Form: true,
}

// Generic is the tag set that is interactive only when carrying an
// event-handler prop.
var Generic = map[ElementType]bool{
	Div: true, Span: true, Img: true, Label: true,
}


// RawElement is one interactive element discovered in the source tree, prior
// to naming.
type RawElement struct {
	Type          ElementType       `json:"type"`
	FilePath      string            `json:"filePath"`
	Line          int               `json:"line"`
	Column        int               `json:"column"`
	ComponentName string            `json:"componentName,omitempty"`
	Route         string            `json:"route,omitempty"`
	Label         string            `json:"label,omitempty"`
	Handler       string            `json:"handler,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Conditional   bool              `json:"conditional"`
	Dynamic       bool              `json:"dynamic"`
}

// NamedElement is a RawElement plus its assigned agent id.
type NamedElement struct {
	RawElement
	AgentID string `json:"agentId"`
}

// GeneratorInfo identifies the tool/version that produced a manifest, plus a
// per-run correlation id for tying a manifest back to the scan invocation
// (and its logs) that produced it.
type GeneratorInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	RunID   string `json:"runId,omitempty"`
}

// ManifestMetadata summarizes one scan's provenance and outcome.
type ManifestMetadata struct {
	Framework         string   `json:"framework,omitempty"`
	ProjectRoot       string   `json:"projectRoot"`
	FilesScanned      int      `json:"filesScanned"`
	ElementsDiscovered int     `json:"elementsDiscovered"`
	Warnings          []string `json:"warnings,omitempty"`
}

// SchemaVersion is the only manifest schema version this build understands.
const SchemaVersion = "1.0"

// Manifest is the canonical, versioned JSON inventory of a scan.
type Manifest struct {
	SchemaVersion string           `json:"schemaVersion"`
	GeneratedAt   string           `json:"generatedAt"`
	Generator     GeneratorInfo    `json:"generator"`
	Metadata      ManifestMetadata `json:"metadata"`
	Elements      []NamedElement   `json:"elements"`
}

// Patch is the result of annotating one source file.
type Patch struct {
	FilePath    string `json:"filePath"`
	Diff        string `json:"diff,omitempty"`
	Insertions  int    `json:"insertions"`
}

// ChangeKind enumerates the ways one element can differ between two
// manifests.
type ChangeKind string

const (
	Added    ChangeKind = "added"
	Removed  ChangeKind = "removed"
	Modified ChangeKind = "modified"
)

// ChangeCategory classifies the severity of a ChangeEntry.
type ChangeCategory string

const (
	Breaking ChangeCategory = "breaking"
	Additive ChangeCategory = "additive"
	Neutral  ChangeCategory = "neutral"
)

// ChangeEntry is one row of a manifest diff.
type ChangeEntry struct {
	Kind     ChangeKind     `json:"kind"`
	AgentID  string         `json:"agentId"`
	Before   *NamedElement  `json:"before,omitempty"`
	After    *NamedElement  `json:"after,omitempty"`
	Category ChangeCategory `json:"category"`
}
