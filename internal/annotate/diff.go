package annotate

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"
)

// unifiedDiff renders a standard ---/+++/@@ unified diff (3 lines of
// context) between original and edited file contents, or "" if they are
// byte-identical.
func unifiedDiff(filePath string, original, edited []byte) (string, error) {
	before, after := string(original), string(edited)
	if before == after {
		return "", nil
	}
	edits := udiff.Strings(before, after)
	unified, err := udiff.ToUnified("a/"+filePath, "b/"+filePath, before, edits)
	if err != nil {
		return "", fmt.Errorf("render unified diff for %s: %w", filePath, err)
	}
	return fmt.Sprint(unified), nil
}
