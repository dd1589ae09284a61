package build

import (
	"os"

	"github.com/bennywwg/autoreflect/internal/gen"
)

// assembleMainImpl rewrites the aggregate output (spec.md §4.7's final
// step): runtime declarations, forward-decl blocks for every merged
// generator, the fixed base-impl/base-template-impl snippets, the
// dynamic-dispatch block, then Regular-mode bodies for every merged
// generator (guarded for non-template types, per §4.4). Emission order is
// ascending key order throughout, for deterministic output.
func assembleMainImpl(path string, set *gen.Set) error {
	var body string
	body += RuntimeDeclInclude

	for _, name := range set.SortedGeneratorNames() {
		text, err := gen.Render(set.Generators[name], gen.ForwardDecl)
		if err != nil {
			return err
		}
		body += text
	}

	body += BaseImplSnippet
	body += BaseTemplateImplSnippet

	dispatch, err := gen.DispatchTable(set.SortedNonTemplateTypes())
	if err != nil {
		return err
	}
	body += dispatch

	for _, name := range set.SortedGeneratorNames() {
		g := set.Generators[name]
		var text string
		if _, isNonTemplate := set.NonTemplateTypes[name]; isNonTemplate {
			text, err = gen.RenderGuarded(g)
		} else {
			text, err = gen.Render(g, gen.Regular)
		}
		if err != nil {
			return err
		}
		body += text
	}

	return os.WriteFile(path, []byte(body), 0o644)
}
