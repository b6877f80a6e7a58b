package naming

import (
	"fmt"
	"sort"
	"strings"

	"github.com/uicontracts/uic/internal/model"
)

// Name assigns agent ids to an unordered set of raw elements. It first
// fixes a deterministic iteration order by sorting on (filePath, line,
// column), then composes a candidate id per element and resolves collisions
// by suffixing the last segment. Naming is a pure function of the sorted
// input — identical inputs always produce identical output.
func Name(elements []model.RawElement) []model.NamedElement {
	sorted := make([]model.RawElement, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	used := make(map[string]struct{}, len(sorted))
	out := make([]model.NamedElement, 0, len(sorted))
	for _, el := range sorted {
		id := composeID(el)
		id = dedupe(id, used)
		used[id] = struct{}{}
		out = append(out, model.NamedElement{RawElement: el, AgentID: id})
	}
	return out
}

// genericComponentNames are container/page component names that say nothing
// about what an element does — including them would only add noise. A
// component named after its route's last segment (e.g. Settings under
// /settings) is dropped separately in composeID, which avoids ids like
// "settings.settings.save.button".
var genericComponentNames = map[string]bool{
	"app": true, "page": true, "layout": true, "root": true, "index": true,
}

// composeID builds the candidate id for one element: route segments, then
// the component segment if it isn't generic and isn't redundant with the
// last route segment, then a purpose segment (handler, falling back to
// label, falling back to "el"), then the element type.
func composeID(el model.RawElement) string {
	var segs []string

	routeSegs := RouteSegments(el.Route)
	segs = append(segs, routeSegs...)

	if el.ComponentName != "" && !genericComponentNames[strings.ToLower(el.ComponentName)] {
		compSeg := ComponentSegment(el.ComponentName)
		if compSeg != "" {
			lastRoute := ""
			if len(routeSegs) > 0 {
				lastRoute = routeSegs[len(routeSegs)-1]
			}
			if el.Route == "" || lastRoute != compSeg {
				segs = append(segs, compSeg)
			}
		}
	}

	purpose := HandlerSegment(el.Handler)
	if purpose == "" {
		purpose = LabelSegment(el.Label)
	}
	if purpose == "" {
		purpose = "el"
	}
	segs = append(segs, purpose)

	segs = append(segs, string(el.Type))

	segs = nonEmpty(segs)
	if len(segs) < 2 {
		segs = append([]string{"el"}, segs...)
	}
	return strings.Join(segs, ".")
}

func nonEmpty(segs []string) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// dedupe suffixes the last segment of id with "-2", "-3", … until it no
// longer collides with anything in used.
func dedupe(id string, used map[string]struct{}) string {
	if _, collides := used[id]; !collides {
		return id
	}
	dot := strings.LastIndex(id, ".")
	prefix, last := "", id
	if dot >= 0 {
		prefix, last = id[:dot+1], id[dot+1:]
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s%s-%d", prefix, last, n)
		if _, collides := used[candidate]; !collides {
			return candidate
		}
	}
}
