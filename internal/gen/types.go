// Package gen turns an extracted declaration into emitted C++ source text:
// the four serialize/deserialize function bodies for one reflected type
// (Generator), a per-unit or aggregated collection of them (Set), and the
// dynamic-dispatch table over every non-template reflected type.
package gen

import "sort"

// Generator is the plain record of the four strings that determine the
// emitted code for one reflected type. Design Note 2 calls out the source's
// closure-capturing deferred-emission style as incidental; this is the
// value type plus a free render function (Render, in render.go) that
// replaces it.
type Generator struct {
	TemplatesHeader       string
	FullTypeName          string
	SerializeFieldsBody   string
	DeserializeFieldsBody string
}

// Equal reports value-equality over all four strings.
func (g Generator) Equal(other Generator) bool {
	return g.TemplatesHeader == other.TemplatesHeader &&
		g.FullTypeName == other.FullTypeName &&
		g.SerializeFieldsBody == other.SerializeFieldsBody &&
		g.DeserializeFieldsBody == other.DeserializeFieldsBody
}

// Set is a per-unit or aggregated collection of Generators, plus the subset
// of fully qualified names eligible for dynamic dispatch (non-template
// types only).
type Set struct {
	Generators       map[string]Generator
	NonTemplateTypes map[string]struct{}
}

// NewSet returns an empty, ready-to-use Set.
func NewSet() *Set {
	return &Set{
		Generators:       make(map[string]Generator),
		NonTemplateTypes: make(map[string]struct{}),
	}
}

// SortedNonTemplateTypes returns the non-template type names in ascending
// order, the deterministic iteration order spec.md §4.5 and §4.7 require
// for the dynamic-dispatch table and final emission.
func (s *Set) SortedNonTemplateTypes() []string {
	out := make([]string, 0, len(s.NonTemplateTypes))
	for name := range s.NonTemplateTypes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SortedGeneratorNames returns every key of Generators in ascending order.
func (s *Set) SortedGeneratorNames() []string {
	out := make([]string, 0, len(s.Generators))
	for name := range s.Generators {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
