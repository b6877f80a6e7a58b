package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude is the glob list used when the caller supplies none.
var DefaultInclude = []string{"**/*.tsx", "**/*.jsx"}

// DefaultExclude is the glob list always honored, regardless of
// caller-supplied excludes (which are unioned with these, never replace
// them).
var DefaultExclude = []string{
	"node_modules/**",
	"dist/**",
	"build/**",
	".next/**",
	"coverage/**",
	"**/__tests__/**",
	"**/*.test.tsx",
	"**/*.test.jsx",
	"**/*.spec.tsx",
	"**/*.spec.jsx",
	"**/*.stories.tsx",
	"**/*.stories.jsx",
	"vitest.setup.tsx",
	"vitest.setup.jsx",
	"jest.setup.tsx",
	"jest.setup.jsx",
}

// selectFiles walks root honoring include/exclude globs (matched with
// doublestar so "**" behaves as expected) and an optional max recursion
// depth. Returned paths are root-relative, forward-slash, POSIX-sorted.
func selectFiles(root string, include, exclude []string, maxDepth int) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	allExclude := make([]string, 0, len(DefaultExclude)+len(exclude))
	allExclude = append(allExclude, DefaultExclude...)
	allExclude = append(allExclude, exclude...)

	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if maxDepth > 0 && !d.IsDir() {
			if depth := strings.Count(rel, "/") + 1; depth > maxDepth {
				return nil
			}
		}
		if d.IsDir() {
			if maxDepth > 0 && strings.Count(rel, "/")+1 > maxDepth {
				return filepath.SkipDir
			}
			if matchesAny(rel+"/", allExclude) || matchesAny(rel, allExclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(rel, allExclude) {
			return nil
		}
		if matchesAny(rel, include) {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func matchesAny(path string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, path); ok {
			return true
		}
	}
	return false
}
