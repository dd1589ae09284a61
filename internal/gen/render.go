package gen

import (
	"strings"
)

// Mode selects which of the three rendering modes Render produces.
type Mode int

const (
	ForwardDecl Mode = iota
	Regular
	Inline
)

type declsData struct {
	TemplatesHeader string
	Qualifier       string
	Signatures      []string
}

type bodiesData struct {
	TemplatesHeader       string
	Qualifier             string
	FullTypeName          string
	SerializeFieldsBody   string
	DeserializeFieldsBody string
}

type guardData struct {
	Macro string
	Inner string
}

func signatures(g Generator) []string {
	t := g.FullTypeName
	return []string{
		"void Serialize(Serializer& Ser, char const* name, " + t + " const& Val)",
		"void Deserialize(Deserializer& Ser, char const* name, " + t + "& Val)",
		"void SerializeFields(Serializer& Ser, " + t + " const& Val)",
		"void DeserializeFields(Deserializer& Ser, " + t + "& Val)",
	}
}

// qualifier implements the §4.4 qualifier rule: "inline " iff the templates
// header is non-empty or mode is Inline; "" otherwise.
func qualifier(g Generator, mode Mode) string {
	if g.TemplatesHeader != "" || mode == Inline {
		return "inline "
	}
	return ""
}

// GuardMacro derives the include-guard macro name for a non-template type's
// Regular-mode output: full_type_name with each of `:<>,` replaced by `_`,
// suffixed `_IMPL`.
func GuardMacro(fullTypeName string) string {
	replacer := strings.NewReplacer(":", "_", "<", "_", ">", "_", ",", "_")
	return replacer.Replace(fullTypeName) + "_IMPL"
}

// Render produces source text for g in the requested mode. It never adds an
// include guard: the caller (internal/build) decides per type category and
// calls RenderGuarded for the types that get one.
func Render(g Generator, mode Mode) (string, error) {
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	var sb strings.Builder
	if mode == ForwardDecl {
		data := declsData{
			TemplatesHeader: g.TemplatesHeader,
			Qualifier:       qualifier(g, mode),
			Signatures:      signatures(g),
		}
		if err := fileTmpl.ExecuteTemplate(&sb, tmplDecls, data); err != nil {
			return "", err
		}
		return sb.String(), nil
	}
	data := bodiesData{
		TemplatesHeader:       g.TemplatesHeader,
		Qualifier:             qualifier(g, mode),
		FullTypeName:          g.FullTypeName,
		SerializeFieldsBody:   g.SerializeFieldsBody,
		DeserializeFieldsBody: g.DeserializeFieldsBody,
	}
	if err := fileTmpl.ExecuteTemplate(&sb, tmplBodies, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderGuarded renders g in Regular mode and wraps the result in the
// include-guard macro derived from its full type name.
func RenderGuarded(g Generator) (string, error) {
	body, err := Render(g, Regular)
	if err != nil {
		return "", err
	}
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	var sb strings.Builder
	data := guardData{Macro: GuardMacro(g.FullTypeName), Inner: body}
	if err := fileTmpl.ExecuteTemplate(&sb, tmplGuard, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type dispatchData struct {
	Names []string
}

// DispatchTable emits the four dynamic-dispatch functions (§4.5) over the
// given non-template type names, which must already be in the deterministic
// ascending order Set.SortedNonTemplateTypes produces.
func DispatchTable(names []string) (string, error) {
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := fileTmpl.ExecuteTemplate(&sb, tmplDispatch, dispatchData{Names: names}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
