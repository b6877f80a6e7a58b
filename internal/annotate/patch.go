package annotate

import (
	"fmt"
	"sort"

	"github.com/uicontracts/uic/internal/model"
	"github.com/uicontracts/uic/internal/uicerr"
)

// edit is one byte-range replacement: [start, end) in the original source is
// replaced with replacement. A zero-width span (start == end) is an
// insertion.
type edit struct {
	start, end  int
	replacement string
}

// elementOutcome records what happened to one element during buildEdits.
type elementOutcome struct {
	applied bool
	skipped bool
	warning *Warning
}

// buildEdits resolves every element against src and returns the edits to
// apply (already validated for offset collisions) plus a per-element
// outcome list in the same order as elements.
func buildEdits(src []byte, elements []model.NamedElement) ([]edit, []elementOutcome, error) {
	edits := make([]edit, 0, len(elements))
	outcomes := make([]elementOutcome, len(elements))
	seenOffsets := map[int]string{}

	for i, el := range elements {
		openOffset, nameEnd, end, ok := locateTag(src, el.Line, el.Column)
		if !ok {
			outcomes[i] = elementOutcome{warning: &Warning{
				Code: "ANNOTATION_MISMATCH", FilePath: el.FilePath, AgentID: el.AgentID,
			}}
			continue
		}

		if owner, dup := seenOffsets[openOffset]; dup {
			return nil, nil, uicerr.New(uicerr.AnnotationFailed,
				"two elements resolve to the same tag offset",
				"filePath", el.FilePath, "agentId", el.AgentID, "conflictsWith", owner)
		}
		seenOffsets[openOffset] = el.AgentID

		valueStart, valueEnd, current, found := existingAgentID(src, nameEnd, end)
		switch {
		case found && current == el.AgentID:
			outcomes[i] = elementOutcome{skipped: true}
		case found:
			edits = append(edits, edit{start: valueStart, end: valueEnd, replacement: el.AgentID})
			outcomes[i] = elementOutcome{applied: true}
		default:
			edits = append(edits, edit{
				start:       nameEnd,
				end:         nameEnd,
				replacement: fmt.Sprintf(` data-agent-id="%s"`, el.AgentID),
			})
			outcomes[i] = elementOutcome{applied: true}
		}
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	return edits, outcomes, nil
}

// applyEdits applies edits back-to-front (descending offset) so earlier
// offsets stay valid as later ones are rewritten.
func applyEdits(src []byte, edits []edit) []byte {
	out := append([]byte(nil), src...)
	for _, e := range edits {
		var next []byte
		next = append(next, out[:e.start]...)
		next = append(next, e.replacement...)
		next = append(next, out[e.end:]...)
		out = next
	}
	return out
}
