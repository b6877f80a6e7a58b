// Package framework provides best-effort routing-convention detection and
// the route-derivation rule for the Next.js "app-router" convention.
package framework

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Convention names a source-tree-to-route mapping strategy.
type Convention string

const (
	AppRouter   Convention = "app-router"
	PagesRouter Convention = "pages-router"
	Generic     Convention = "generic"
)

// Detect reads package.json at root (if present) and picks a convention from
// its dependencies. An unreadable or missing package.json is never fatal —
// it falls back to Generic.
func Detect(root string) Convention {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return Generic
	}
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if json.Unmarshal(data, &pkg) != nil {
		return Generic
	}
	if _, ok := pkg.Dependencies["next"]; ok {
		if hasAppDir(root) {
			return AppRouter
		}
		return PagesRouter
	}
	return Generic
}

func hasAppDir(root string) bool {
	for _, candidate := range []string{filepath.Join(root, "src", "app"), filepath.Join(root, "app")} {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// RouteForFile derives a route from a project-relative, forward-slash file
// path under the app-router convention: a file literally named
// page.tsx/page.jsx maps its containing directory — relative to
// <root>/src/app or <root>/app — to a route, with a leading "/". Any other
// convention (or a page.* file outside those roots) yields no route.
func RouteForFile(conv Convention, relPath string) string {
	if conv != AppRouter {
		return ""
	}
	base := filepath.Base(relPath)
	if base != "page.tsx" && base != "page.jsx" {
		return ""
	}
	dir := filepath.ToSlash(filepath.Dir(relPath))
	for _, prefix := range []string{"src/app", "app"} {
		if dir == prefix {
			return "/"
		}
		if strings.HasPrefix(dir, prefix+"/") {
			rel := strings.TrimPrefix(dir, prefix+"/")
			return "/" + rel
		}
	}
	return ""
}
