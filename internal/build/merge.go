package build

import "github.com/bennywwg/autoreflect/internal/gen"

// merge implements spec.md §4.8: combine a unit's per-type generators and
// non-template-type set into the global set. First-seen definitions win;
// conflicting re-definitions are reported but do not block the unit's
// already-written output.
func merge(global *gen.Set, unit *gen.Set) (conflicts []string) {
	for name, g := range unit.Generators {
		existing, present := global.Generators[name]
		switch {
		case !present:
			global.Generators[name] = g
		case existing.Equal(g):
			// identical re-definition: no-op
		default:
			conflicts = append(conflicts, name)
		}
	}
	for name := range unit.NonTemplateTypes {
		global.NonTemplateTypes[name] = struct{}{}
	}
	return conflicts
}
