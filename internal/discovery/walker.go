package discovery

import (
	"bytes"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsx "github.com/smacker/go-tree-sitter/typescript/tsx"
	ts "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/uicontracts/uic/internal/model"
)

// frame is one entry of the ancestor stack the walker maintains while
// descending the AST.
type frame struct {
	kind string // "func", "conditional", "dynamic"
	name string // populated for kind == "func"
}

type ancestorStack []frame

// componentName returns the nearest ancestor function/class declaration
// whose identifier is PascalCase, or "" if none.
func (s ancestorStack) componentName() string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].kind == "func" && s[i].name != "" {
			return s[i].name
		}
	}
	return ""
}

// flaggedSinceNearestFunc reports whether a frame of the given kind
// ("conditional" or "dynamic") appears between the current position and the
// nearest enclosing function frame; it does not look past that boundary.
func (s ancestorStack) flaggedSinceNearestFunc(kind string) bool {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].kind == kind {
			return true
		}
		if s[i].kind == "func" {
			return false
		}
	}
	return false
}

func (s ancestorStack) pushFunc(name string) ancestorStack {
	return append(s, frame{kind: "func", name: name})
}
func (s ancestorStack) pushConditional() ancestorStack {
	return append(s, frame{kind: "conditional"})
}
func (s ancestorStack) pushDynamic() ancestorStack {
	return append(s, frame{kind: "dynamic"})
}

// attrValue is a jsx_attribute's parsed value.
type attrValue struct {
	isString     bool
	str          string
	isIdentifier bool
	identifier   string
}

// fileWalker extracts RawElements from one parsed file.
type fileWalker struct {
	src          []byte
	filePath     string
	route        string
	componentMap map[string]model.ElementType
	elements     []model.RawElement
	mappedNoHandler bool // set when the open question's advisory condition fires
}

// languageFor picks the tree-sitter grammar by extension: the plain
// TypeScript grammar for ".ts", and the TSX grammar (a JSX-capable
// superset) for everything else, including ".jsx".
func languageFor(path string) *sitter.Language {
	if strings.HasSuffix(strings.ToLower(path), ".ts") {
		return ts.GetLanguage()
	}
	return tsx.GetLanguage()
}

// parseFile runs the walker over one file's contents and returns the
// interactive elements it finds, or an error if the parser could not
// produce a tree or the tree contains syntax errors (a PARSE_ERROR at the
// caller).
func parseFile(relPath string, content []byte, route string, componentMap map[string]model.ElementType) ([]model.RawElement, bool, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(relPath))
	tree := parser.Parse(nil, content)
	if tree == nil || tree.RootNode() == nil || tree.RootNode().HasError() {
		return nil, false, errParse
	}
	w := &fileWalker{src: content, filePath: relPath, route: route, componentMap: componentMap}
	w.visit(tree.RootNode(), ancestorStack{})
	return w.elements, w.mappedNoHandler, nil
}

var errParse = &parseErr{}

type parseErr struct{}

func (*parseErr) Error() string { return "parse failed" }

func (w *fileWalker) visit(n *sitter.Node, stack ancestorStack) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		stack = stack.pushFunc(componentNameOf(identifierOf(n, w.src)))
		w.visitChildren(n, stack)
		return

	case "class_declaration":
		stack = stack.pushFunc(componentNameOf(identifierOf(n, w.src)))
		w.visitChildren(n, stack)
		return

	case "variable_declarator":
		id := findChild(n, "identifier")
		value := lastNamedChild(n)
		if id != nil && value != nil && isFunctionLike(value.Type()) {
			stack = stack.pushFunc(componentNameOf(nodeText(w.src, id)))
		}
		w.visitChildren(n, stack)
		return

	case "ternary_expression":
		cond := n.NamedChild(0)
		w.visit(cond, stack)
		condStack := stack.pushConditional()
		for i := 1; i < int(n.NamedChildCount()); i++ {
			w.visit(n.NamedChild(i), condStack)
		}
		return

	case "binary_expression":
		left := n.ChildByFieldName("left")
		op := n.ChildByFieldName("operator")
		right := n.ChildByFieldName("right")
		w.visit(left, stack)
		if op != nil && (nodeText(w.src, op) == "&&" || nodeText(w.src, op) == "||") {
			w.visit(right, stack.pushConditional())
		} else {
			w.visit(right, stack)
		}
		return

	case "call_expression":
		callee := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		w.visit(callee, stack)
		if isMapLikeCallee(callee, w.src) {
			w.visit(args, stack.pushDynamic())
		} else {
			w.visit(args, stack)
		}
		return

	case "jsx_element":
		opening := findChild(n, "jsx_opening_element")
		if opening != nil {
			w.handleJSX(n, opening, stack)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c.Type() == "jsx_opening_element" || c.Type() == "jsx_closing_element" {
				continue
			}
			w.visit(c, stack)
		}
		return

	case "jsx_self_closing_element":
		w.handleJSX(n, n, stack)
		w.visitChildren(n, stack)
		return

	default:
		w.visitChildren(n, stack)
	}
}

func (w *fileWalker) visitChildren(n *sitter.Node, stack ancestorStack) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.visit(n.NamedChild(i), stack)
	}
}

// handleJSX turns one JSX opening tag into a RawElement if it is
// interactive. posNode supplies line/column (the position of the tag's
// "<"); tagNode supplies the tag name and attributes (for jsx_element these
// differ: posNode is the jsx_element, tagNode its jsx_opening_element; for
// self-closing elements they are the same node).
func (w *fileWalker) handleJSX(posNode, tagNode *sitter.Node, stack ancestorStack) {
	tagName, attrs := extractOpeningTag(tagNode, w.src)
	if tagName == "" || strings.Contains(tagName, ".") {
		return // member-expression tag names are ignored
	}

	elemType, ok := classify(tagName, attrs, w.componentMap)
	if !ok {
		return
	}

	if isPascal(tagName) {
		if _, hasHandler := firstPresentEventProp(attrs); !hasHandler {
			w.mappedNoHandler = true
		}
	}

	start := posNode.StartPoint()

	el := model.RawElement{
		Type:          elemType,
		FilePath:      w.filePath,
		Line:          int(start.Row) + 1,
		Column:        int(start.Column) + 1,
		ComponentName: stack.componentName(),
		Route:         w.route,
		Label:         labelOf(posNode, attrs, w.src),
		Handler:       handlerOf(attrs),
		Attributes:    dataAttrs(attrs),
		Conditional:   stack.flaggedSinceNearestFunc("conditional"),
		Dynamic:       stack.flaggedSinceNearestFunc("dynamic"),
	}
	w.elements = append(w.elements, el)
}

// classify implements the interactivity rule: always-interactive tags
// qualify outright, generic tags need an event-handler prop, and
// PascalCase tags qualify only via an explicit component map.
func classify(tagName string, attrs map[string]attrValue, componentMap map[string]model.ElementType) (model.ElementType, bool) {
	if !isPascal(tagName) {
		lower := model.ElementType(strings.ToLower(tagName))
		if model.AlwaysInteractive[lower] {
			return lower, true
		}
		if model.Generic[lower] {
			if _, has := firstPresentEventProp(attrs); has {
				return lower, true
			}
		}
		return "", false
	}
	if mapped, ok := componentMap[tagName]; ok {
		return mapped, true
	}
	return "", false
}

func firstPresentEventProp(attrs map[string]attrValue) (string, bool) {
	for _, p := range eventPropPreference {
		if _, ok := attrs[p]; ok {
			return p, true
		}
	}
	return "", false
}

var eventPropPreference = []string{
	"onClick", "onSubmit",
	"onBlur", "onChange", "onFocus", "onInput", "onKeyDown", "onKeyPress", "onKeyUp",
}

func handlerOf(attrs map[string]attrValue) string {
	prop, ok := firstPresentEventProp(attrs)
	if !ok {
		return ""
	}
	v := attrs[prop]
	if v.isIdentifier {
		return v.identifier
	}
	return ""
}

func dataAttrs(attrs map[string]attrValue) map[string]string {
	out := map[string]string{}
	for name, v := range attrs {
		if strings.HasPrefix(name, "data-") && v.isString {
			out[name] = v.str
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func labelOf(elementNode *sitter.Node, attrs map[string]attrValue, src []byte) string {
	if text := flattenText(elementNode, src); text != "" {
		return text
	}
	if v, ok := attrs["aria-label"]; ok && v.isString && v.str != "" {
		return v.str
	}
	if v, ok := attrs["placeholder"]; ok && v.isString && v.str != "" {
		return v.str
	}
	return ""
}

// flattenText concatenates static jsx_text children of a jsx_element,
// ignoring nested elements and expression containers.
func flattenText(n *sitter.Node, src []byte) string {
	if n.Type() != "jsx_element" {
		return ""
	}
	var b strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "jsx_text" {
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString(nodeText(src, c))
		}
	}
	out := whitespaceRun.ReplaceAllString(strings.TrimSpace(b.String()), " ")
	return out
}

func extractOpeningTag(n *sitter.Node, src []byte) (string, map[string]attrValue) {
	attrs := map[string]attrValue{}
	var tagName string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "identifier", "nested_identifier", "member_expression", "jsx_identifier":
			if tagName == "" {
				tagName = nodeText(src, c)
			}
		case "jsx_attribute":
			name, val := extractAttribute(c, src)
			if name != "" {
				attrs[name] = val
			}
		}
	}
	return tagName, attrs
}

func extractAttribute(n *sitter.Node, src []byte) (string, attrValue) {
	var name string
	var val attrValue
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "property_identifier":
			name = nodeText(src, c)
		case "string":
			val.isString = true
			val.str = stringContent(c, src)
		case "jsx_expression":
			inner := firstNamedChild(c)
			if inner == nil {
				continue
			}
			switch inner.Type() {
			case "identifier":
				val.isIdentifier = true
				val.identifier = nodeText(src, inner)
			case "member_expression":
				val.isIdentifier = true
				val.identifier = lastMemberSegment(inner, src)
			case "string":
				val.isString = true
				val.str = stringContent(inner, src)
			}
		}
	}
	return name, val
}

func stringContent(n *sitter.Node, src []byte) string {
	if c := findChild(n, "string_fragment"); c != nil {
		return nodeText(src, c)
	}
	text := nodeText(src, n)
	return strings.Trim(text, `"'`)
}

func lastMemberSegment(n *sitter.Node, src []byte) string {
	if prop := n.ChildByFieldName("property"); prop != nil {
		return nodeText(src, prop)
	}
	return nodeText(src, n)
}

func isFunctionLike(t string) bool {
	switch t {
	case "arrow_function", "function", "function_expression":
		return true
	}
	return false
}

func isMapLikeCallee(callee *sitter.Node, src []byte) bool {
	if callee == nil || callee.Type() != "member_expression" {
		return false
	}
	prop := callee.ChildByFieldName("property")
	if prop == nil {
		return false
	}
	switch nodeText(src, prop) {
	case "map", "flatMap", "forEach":
		return true
	}
	return false
}

func identifierOf(n *sitter.Node, src []byte) string {
	if id := findChild(n, "identifier"); id != nil {
		return nodeText(src, id)
	}
	if id := findChild(n, "type_identifier"); id != nil {
		return nodeText(src, id)
	}
	return ""
}

func componentNameOf(name string) string {
	if isPascal(name) {
		return name
	}
	return ""
}

func isPascal(s string) bool {
	if s == "" {
		return false
	}
	r := rune(s[0])
	return r >= 'A' && r <= 'Z'
}

func findChild(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == typ {
			return c
		}
	}
	return nil
}

func lastNamedChild(n *sitter.Node) *sitter.Node {
	count := int(n.NamedChildCount())
	if count == 0 {
		return nil
	}
	return n.NamedChild(count - 1)
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	if n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}

func nodeText(src []byte, n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(bytes.TrimSpace(src[n.StartByte():n.EndByte()]))
}
