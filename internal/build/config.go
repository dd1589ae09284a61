// Package build is the top-level Build Driver: the parallel, incremental
// loop that turns a list of translation units into per-unit `.gen.inl`
// headers plus a single aggregated main-impl output, consulting
// internal/gencache where inputs are unchanged and merging per-unit
// results into one global internal/gen.Set under a single mutex.
package build

// Config is the Build Driver's input, spec.md §4.7.
type Config struct {
	IncludeDirs  []string
	FilesToParse []string
	// MainImplPath is required: the source whose generated output will be
	// MainImplPath + ".gen.inl".
	MainImplPath string
	Silent       bool
}

// GenSuffix is the suffix every generated per-unit header and the
// aggregate output share.
const GenSuffix = ".gen.inl"

func outputPath(unitPath string) string {
	return unitPath + GenSuffix
}
