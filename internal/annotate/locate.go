package annotate

import (
	"regexp"
)

// offsetForPosition converts a 1-based (line, column) into a byte offset
// into src. Returns -1 if the position is out of range.
func offsetForPosition(src []byte, line, column int) int {
	if line < 1 || column < 1 {
		return -1
	}
	row := 1
	lineStart := 0
	for i := 0; i <= len(src); i++ {
		if row == line {
			lineStart = i
			break
		}
		if i == len(src) {
			return -1
		}
		if src[i] == '\n' {
			row++
		}
	}
	offset := lineStart + column - 1
	if offset < 0 || offset > len(src) {
		return -1
	}
	return offset
}

func isNameChar(b byte) bool {
	return b == '-' || b == '_' || b == '.' || b == ':' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// tagNameEnd scans forward from a '<' offset over the tag name and returns
// the offset immediately after it — the insertion point for a new attribute.
func tagNameEnd(src []byte, ltOffset int) int {
	i := ltOffset + 1
	for i < len(src) && isNameChar(src[i]) {
		i++
	}
	return i
}

// tagEnd scans forward from nameEnd to the byte offset of the opening tag's
// closing '>' (top-level, i.e. not inside a quoted string or a brace-nested
// JSX expression attribute value), or -1 if the tag never closes.
func tagEnd(src []byte, nameEnd int) int {
	depth := 0
	var inString byte
	for i := nameEnd; i < len(src); i++ {
		c := src[i]
		if inString != 0 {
			if c == inString {
				inString = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = c
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

var agentIDAttr = regexp.MustCompile(`data-agent-id\s*=\s*"([^"]*)"`)

// existingAgentID looks for a data-agent-id="..." attribute within
// src[nameEnd:end] and, if found, returns the byte offsets of its value
// (exclusive of the surrounding quotes) plus the value itself.
func existingAgentID(src []byte, nameEnd, end int) (valueStart, valueEnd int, value string, found bool) {
	loc := agentIDAttr.FindSubmatchIndex(src[nameEnd:end])
	if loc == nil {
		return 0, 0, "", false
	}
	return nameEnd + loc[2], nameEnd + loc[3], string(src[nameEnd+loc[2] : nameEnd+loc[3]]), true
}

// locateTag resolves one NamedElement's opening tag in the current source
// bytes and reports either the insertion point or the existing attribute's
// value span. ok is false if the offset no longer resolves to a JSX opening
// tag (the source has drifted from the manifest) — the caller skips the
// element with a warning.
func locateTag(src []byte, line, column int) (openOffset, nameEndOffset, tagEndOffset int, ok bool) {
	openOffset = offsetForPosition(src, line, column)
	if openOffset < 0 || openOffset >= len(src) || src[openOffset] != '<' {
		return 0, 0, 0, false
	}
	nameEndOffset = tagNameEnd(src, openOffset)
	if nameEndOffset == openOffset+1 {
		return 0, 0, 0, false // no tag-name characters followed '<'
	}
	tagEndOffset = tagEnd(src, nameEndOffset)
	if tagEndOffset < 0 {
		return 0, 0, 0, false
	}
	return openOffset, nameEndOffset, tagEndOffset, true
}
