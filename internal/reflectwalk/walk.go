// Package reflectwalk is the Scope Walker & Extractor: a pre-order descent
// over an astdump.Tree that tracks lexical scope (namespaces, templates,
// enclosing records) and produces a gen.Set of reflected-type generators.
package reflectwalk

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bennywwg/autoreflect/internal/astdump"
	"github.com/bennywwg/autoreflect/internal/gen"
)

// ScopeState is the state threaded through one unit's walk. It must be
// empty (both stacks) when the walk returns — Design Note 3 calls the
// source's destructor-driven teardown incidental; a plain acquire/walk/pop
// block around each unit's recursion gives the same guarantee here.
type ScopeState struct {
	TemplateStack             []Template
	NameStack                 []string
	EnumUnderlying            map[string]string
	AutoReflectNamespaceDepth int
	Errors                    []string
}

const autoReflectSentinel = "AutoReflect"

var (
	fieldRe = regexp.MustCompile(`^(\w+) '([A-Za-z0-9_:<>,\*&\[\]\s]+)'$`)
)

type walker struct {
	tree  *astdump.Tree
	state ScopeState
	set   *gen.Set
}

// Walk runs the Scope Walker & Extractor over tree, returning the
// per-unit ImplementationGeneratorSet and the accumulated parse-anomaly
// error list (spec.md §7's Parse anomaly class — never panics across the
// unit boundary).
func Walk(tree *astdump.Tree) (*gen.Set, []string) {
	w := &walker{
		tree: tree,
		state: ScopeState{
			EnumUnderlying: make(map[string]string),
		},
		set: gen.NewSet(),
	}
	top := tree.TopLevel()
	if top == nil {
		return w.set, w.state.Errors
	}
	w.walkScope(top)
	return w.set, w.state.Errors
}

func (w *walker) fullyQualified() string {
	return strings.Join(w.state.NameStack, "::")
}

// walkScope dispatches each child of a scope node (translation unit,
// namespace, or record) per spec.md §4.3. A class-template node is not
// walked here: visitClassTemplate enters only its last child record.
func (w *walker) walkScope(node *astdump.Node) {
	for _, childIdx := range node.Children {
		child := w.tree.At(childIdx)
		switch child.Tag {
		case astdump.NamespaceDecl:
			w.visitNamespace(child)
		case astdump.EnumDecl:
			w.visitEnum(child)
		case astdump.ClassTemplateDecl:
			w.visitClassTemplate(child)
		case astdump.RecordDecl:
			if name, ok := tryRecord(child.Payload); ok {
				w.enterRecord(child, name)
			}
		default:
			// ignored: FieldDecl/AccessPublic/AccessPrivate only matter
			// inside enterRecord; other tags carry no reflectable structure.
		}
	}
}

func (w *walker) visitNamespace(node *astdump.Node) {
	localName := lastToken(node.Payload)
	w.state.NameStack = append(w.state.NameStack, localName)
	incremented := localName == autoReflectSentinel
	if incremented {
		w.state.AutoReflectNamespaceDepth++
	}

	w.walkScope(node)

	if incremented {
		w.state.AutoReflectNamespaceDepth--
	}
	w.state.NameStack = w.state.NameStack[:len(w.state.NameStack)-1]
}

func (w *walker) visitEnum(node *astdump.Node) {
	name, underlying, ok := parseScopedEnum(node.Payload)
	if !ok {
		return
	}
	key := w.fullyQualified() + "::" + name
	w.state.EnumUnderlying[key] = underlying
}

func (w *walker) visitClassTemplate(node *astdump.Node) {
	tmpl := buildTemplate(w.tree, node)
	w.state.TemplateStack = append(w.state.TemplateStack, tmpl)

	if len(node.Children) > 0 {
		last := w.tree.At(node.Children[len(node.Children)-1])
		if last.Tag == astdump.RecordDecl {
			if name, ok := tryRecord(last.Payload); ok {
				w.enterRecord(last, name)
			}
		}
	}

	w.state.TemplateStack = w.state.TemplateStack[:len(w.state.TemplateStack)-1]
}

// enterRecord implements spec.md §4.3.1.
func (w *walker) enterRecord(node *astdump.Node, localName string) {
	w.state.NameStack = append(w.state.NameStack, localName)

	flattened := Flatten(w.state.TemplateStack)
	templatesHeader := flattened.RenderHeader(true)
	fullyQualified := w.fullyQualified()
	fullTypeName := fullyQualified + flattened.RenderNames()

	var serBody, deserBody strings.Builder
	foundMarker := false

	for _, childIdx := range node.Children {
		child := w.tree.At(childIdx)
		switch child.Tag {
		case astdump.FieldDecl:
			w.emitField(child.Payload, &serBody, &deserBody)
		case astdump.AccessPublic, astdump.AccessPrivate:
			if child.Payload == "'AutoReflect'" {
				foundMarker = true
			}
		}
	}

	nestedTemplateError := false
	if len(w.state.TemplateStack) > 1 && (w.state.AutoReflectNamespaceDepth > 0 || foundMarker) {
		w.state.Errors = append(w.state.Errors, fmt.Sprintf("nested templates unsupported: %s", fullTypeName))
		nestedTemplateError = true
	}

	// Recurse into the record as a scope (nested records, templates, enums)
	// before popping, so nested declarations see this record's name on the
	// stack.
	w.walkScope(node)

	w.state.NameStack = w.state.NameStack[:len(w.state.NameStack)-1]

	shouldEmit := (w.state.AutoReflectNamespaceDepth > 0 || foundMarker) && !nestedTemplateError
	if !shouldEmit {
		return
	}
	if _, exists := w.set.Generators[fullTypeName]; exists {
		return // first wins within a unit
	}
	w.set.Generators[fullTypeName] = gen.Generator{
		TemplatesHeader:       templatesHeader,
		FullTypeName:          fullTypeName,
		SerializeFieldsBody:   serBody.String(),
		DeserializeFieldsBody: deserBody.String(),
	}
	if len(flattened.Params) == 0 {
		w.set.NonTemplateTypes[fullyQualified] = struct{}{}
	}
}

func (w *walker) emitField(payload string, serBody, deserBody *strings.Builder) {
	m := fieldRe.FindStringSubmatch(payload)
	if m == nil {
		return
	}
	name, typ := m[1], m[2]
	serExpr := "Val." + name
	deserExpr := "Val." + name
	if underlying, ok := w.state.EnumUnderlying[typ]; ok {
		serExpr = "static_cast<" + underlying + ">(" + serExpr + ")"
		deserExpr = "*reinterpret_cast<" + underlying + "*>(&" + deserExpr + ")"
	}
	fmt.Fprintf(serBody, "    Serialize(Ser, %q, %s);\n", name, serExpr)
	fmt.Fprintf(deserBody, "    Deserialize(Ser, %q, %s);\n", name, deserExpr)
}

// tryRecord matches a RecordDecl payload against "class NAME definition"
// provided it does not contain the token "implicit".
func tryRecord(payload string) (string, bool) {
	if containsToken(payload, "implicit") {
		return "", false
	}
	if !strings.HasPrefix(payload, "class ") {
		return "", false
	}
	fields := strings.Fields(strings.TrimPrefix(payload, "class "))
	if len(fields) < 2 {
		return "", false
	}
	for _, f := range fields[1:] {
		if f == "definition" {
			return fields[0], true
		}
	}
	return "", false
}

// parseScopedEnum matches an EnumDecl payload containing the token "class"
// and ending in a single quote, extracting the local name (first token
// after "class ") and the underlying type (substring after the last
// embedded quote before the closing one).
func parseScopedEnum(payload string) (name, underlying string, ok bool) {
	if !strings.HasSuffix(payload, "'") {
		return "", "", false
	}
	if !containsToken(payload, "class") {
		return "", "", false
	}
	idx := strings.Index(payload, "class ")
	if idx < 0 {
		return "", "", false
	}
	rest := payload[idx+len("class "):]
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", "", false
	}
	name = fields[0]

	var quoteIdx []int
	for i, r := range payload {
		if r == '\'' {
			quoteIdx = append(quoteIdx, i)
		}
	}
	if len(quoteIdx) < 2 {
		return "", "", false
	}
	open := quoteIdx[len(quoteIdx)-2]
	underlying = payload[open+1 : len(payload)-1]
	return name, underlying, true
}

func containsToken(s, tok string) bool {
	for _, f := range strings.Fields(s) {
		if f == tok {
			return true
		}
	}
	return false
}

func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
