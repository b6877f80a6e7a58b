// Package naming implements the deterministic agent-id grammar: pure
// string sanitization and segment extraction, with no knowledge of the rest
// of an element beyond the fields it is handed.
package naming

import (
	"regexp"
	"strings"
)

var (
	lowerOrDigitToUpper = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	upperRunToUpperLow  = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	whitespaceOrUnderscore = regexp.MustCompile(`[\s_]+`)
	nonSegmentChar      = regexp.MustCompile(`[^a-z0-9-]+`)
	dashRuns            = regexp.MustCompile(`-{2,}`)
	leadingDigits       = regexp.MustCompile(`^[0-9]+`)
)

// SanitizeSegment turns any free-form string into a segment matching
// [a-z][a-z0-9-]* (or "" if nothing survives): split camel/Pascal-case
// boundaries with a dash, lowercase, collapse whitespace/underscores and
// any other non-segment character to a dash, squash dash runs, and trim
// leading digits and dashes.
func SanitizeSegment(s string) string {
	s = lowerOrDigitToUpper.ReplaceAllString(s, "${1}-${2}")
	s = upperRunToUpperLow.ReplaceAllString(s, "${1}-${2}")
	s = strings.ToLower(s)
	s = whitespaceOrUnderscore.ReplaceAllString(s, "-")
	s = nonSegmentChar.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	s = leadingDigits.ReplaceAllString(s, "")
	s = strings.TrimLeft(s, "-")
	return s
}

// RouteSegments splits a route like "/settings/billing" into sanitized,
// non-empty path segments.
func RouteSegments(route string) []string {
	if route == "" {
		return nil
	}
	parts := strings.Split(route, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		seg := SanitizeSegment(p)
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// LabelSegment sanitizes a visible-text or aria-label string directly.
func LabelSegment(label string) string {
	return SanitizeSegment(label)
}

// ComponentSegment sanitizes a component name directly.
func ComponentSegment(component string) string {
	return SanitizeSegment(component)
}

// HandlerSegment strips a conventional "handle"/"on" prefix from an event
// handler identifier before sanitizing.
func HandlerSegment(handler string) string {
	if handler == "" {
		return ""
	}
	stripped := handler
	switch {
	case strings.HasPrefix(handler, "handle") && len(handler) > len("handle"):
		stripped = handler[len("handle"):]
	case strings.HasPrefix(handler, "on") && len(handler) > len("on") && isUpper(handler[len("on")]):
		stripped = handler[len("on"):]
	}
	if stripped == "" {
		return ""
	}
	stripped = lowerFirstByte(stripped)
	return SanitizeSegment(stripped)
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func lowerFirstByte(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] = r[0] + ('a' - 'A')
	}
	return string(r)
}
