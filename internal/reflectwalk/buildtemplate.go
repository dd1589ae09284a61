package reflectwalk

import (
	"strings"

	"github.com/bennywwg/autoreflect/internal/astdump"
)

// buildTemplate constructs a Template from the template-parameter children
// of a template-bearing dump node, per spec.md §4.3.2.
func buildTemplate(tree *astdump.Tree, node *astdump.Node) Template {
	var params []TemplateParam
	for _, childIdx := range node.Children {
		child := tree.At(childIdx)
		if !child.Tag.IsTemplateParam() {
			continue
		}
		if child.Tag == astdump.TemplateTemplateParmDecl {
			nested := buildTemplate(tree, child)
			params = append(params, TemplateParam{
				IsTemplateTemplate: true,
				NestedParams:       nested.Params,
				Name:               parseParamName(child.Payload),
			})
			continue
		}
		params = append(params, parseTemplateParam(child.Payload))
	}
	return Template{Params: params}
}

// parseTemplateParam implements spec.md §4.3.2's token-position rules:
// split the payload on spaces; the last token is the parameter name iff it
// does not begin with a digit (otherwise unnamed); an immediately
// preceding token beginning with `.` marks a pack (consumed, not modeled
// distinctly); kind_or_type_name is the token five positions before the
// name, shifted one further back when a pack token is present.
func parseTemplateParam(payload string) TemplateParam {
	tokens := strings.Fields(payload)
	anchor := len(tokens)
	named := false
	if len(tokens) > 0 && !startsWithDigit(tokens[len(tokens)-1]) {
		named = true
		anchor = len(tokens) - 1
	}
	name := ""
	if named {
		name = tokens[anchor]
	}
	pack := anchor-1 >= 0 && strings.HasPrefix(tokens[anchor-1], ".")
	kindIdx := anchor - 5
	if pack {
		kindIdx--
	}
	kindOrType := ""
	if kindIdx >= 0 && kindIdx < len(tokens) {
		kindOrType = tokens[kindIdx]
	}
	return TemplateParam{KindOrTypeName: kindOrType, Name: name}
}

// parseParamName applies just the naming half of parseTemplateParam's rule,
// used for a TemplateTemplateParmDecl's own name (its "kind" is the nested
// Template, not a flat token).
func parseParamName(payload string) string {
	tokens := strings.Fields(payload)
	if len(tokens) == 0 {
		return ""
	}
	last := tokens[len(tokens)-1]
	if startsWithDigit(last) {
		return ""
	}
	return last
}

func startsWithDigit(tok string) bool {
	if tok == "" {
		return false
	}
	return tok[0] >= '0' && tok[0] <= '9'
}
