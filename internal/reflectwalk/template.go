package reflectwalk

import "strings"

// TemplateParam is the tagged variant described in spec.md §3: either a
// type/non-type parameter (KindOrType) or a recursive template-template
// parameter. Go has no tagged unions, so IsTemplateTemplate selects which
// fields apply — the same flattening the teacher uses for its own
// node-kind dispatch (internal/generator's codeNode kind constants).
type TemplateParam struct {
	IsTemplateTemplate bool
	KindOrTypeName     string // valid when !IsTemplateTemplate
	NestedParams       []TemplateParam
	Name               string
}

func (p TemplateParam) render() string {
	if p.IsTemplateTemplate {
		nested := Template{Params: p.NestedParams, Name: p.Name}
		return nested.RenderHeader(false)
	}
	if p.Name != "" {
		return p.KindOrTypeName + " " + p.Name
	}
	return p.KindOrTypeName
}

// Template is the flattened template-parameter-list header for one
// reflected type. An empty Params list is "no template" and renders as the
// empty string everywhere.
type Template struct {
	Params []TemplateParam
	Name   string
}

// RenderHeader renders `template<P1, P2, ...>`, empty if there are no
// params. When outer is false (rendering a nested template-template
// parameter's own header), ` typename NAME` is appended, or just
// ` typename` if NAME is empty.
func (t Template) RenderHeader(outer bool) string {
	if len(t.Params) == 0 {
		return ""
	}
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.render()
	}
	header := "template<" + strings.Join(parts, ", ") + ">"
	if !outer {
		if t.Name != "" {
			header += " typename " + t.Name
		} else {
			header += " typename"
		}
	}
	return header
}

// RenderNames renders `<name1, name2, ...>`, empty if there are no params.
// Unnamed parameters contribute an empty entry (spec.md S3: `Box<T, >`).
func (t Template) RenderNames() string {
	if len(t.Params) == 0 {
		return ""
	}
	names := make([]string, len(t.Params))
	for i, p := range t.Params {
		names[i] = p.Name
	}
	return "<" + strings.Join(names, ", ") + ">"
}

// Flatten concatenates the Params of every Template on the stack in order,
// per spec.md §3's flatten(template_stack).
func Flatten(stack []Template) Template {
	var out Template
	for _, t := range stack {
		out.Params = append(out.Params, t.Params...)
	}
	return out
}
