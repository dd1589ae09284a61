// Package gencache persists and reloads a per-unit gen.Set under the
// workspace-relative .AutoSerialize/ directory, mirroring the unit's path.
// Consulted only when the Build Driver's freshness check finds nothing has
// changed since the previous build (spec.md §4.6).
package gencache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bennywwg/autoreflect/internal/gen"
)

// Dir is the workspace-relative directory cache files are written under.
const Dir = ".AutoSerialize"

// generatorJSON mirrors gen.Generator's four strings under the stable
// on-disk field names spec.md §6 fixes.
type generatorJSON struct {
	Templates               string `json:"Templates"`
	FullTypeName            string `json:"FullTypeName"`
	SerializeFieldsSource   string `json:"SerializeFieldsSource"`
	DeserializeFieldsSource string `json:"DeserializeFieldsSource"`
}

// document mirrors gen.Set one-for-one.
type document struct {
	Generators       map[string]generatorJSON `json:"Generators"`
	NonTemplateTypes []string                 `json:"NonTemplateTypes"`
}

// Path returns the cache file path for unit, mirroring its path under Dir.
func Path(unitPath string) string {
	return filepath.Join(Dir, unitPath)
}

// Save writes set's JSON document to the cache path for unit, creating any
// needed parent directories.
func Save(unitPath string, set *gen.Set) error {
	doc := toDocument(set)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	path := Path(unitPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load returns the cached set for unit, or (nil, false) if no cache file
// exists.
func Load(unitPath string) (*gen.Set, bool) {
	data, err := os.ReadFile(Path(unitPath))
	if err != nil {
		return nil, false
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	return fromDocument(doc), true
}

func toDocument(set *gen.Set) document {
	doc := document{Generators: make(map[string]generatorJSON, len(set.Generators))}
	for name, g := range set.Generators {
		doc.Generators[name] = generatorJSON{
			Templates:               g.TemplatesHeader,
			FullTypeName:            g.FullTypeName,
			SerializeFieldsSource:   g.SerializeFieldsBody,
			DeserializeFieldsSource: g.DeserializeFieldsBody,
		}
	}
	doc.NonTemplateTypes = set.SortedNonTemplateTypes()
	return doc
}

func fromDocument(doc document) *gen.Set {
	set := gen.NewSet()
	for name, g := range doc.Generators {
		set.Generators[name] = gen.Generator{
			TemplatesHeader:       g.Templates,
			FullTypeName:          g.FullTypeName,
			SerializeFieldsBody:   g.SerializeFieldsSource,
			DeserializeFieldsBody: g.DeserializeFieldsSource,
		}
	}
	for _, name := range doc.NonTemplateTypes {
		set.NonTemplateTypes[name] = struct{}{}
	}
	return set
}
