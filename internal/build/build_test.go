package build

import (
	"os"
	"testing"
	"time"

	"github.com/bennywwg/autoreflect/internal/gen"
	"github.com/stretchr/testify/require"
)

func TestMerge_IdenticalDefinitionsNoConflict(t *testing.T) {
	global := gen.NewSet()
	a := gen.NewSet()
	b := gen.NewSet()
	shared := gen.Generator{FullTypeName: "N::X", SerializeFieldsBody: "    Serialize(Ser, \"a\", Val.a);\n"}
	a.Generators["N::X"] = shared
	b.Generators["N::X"] = shared

	require.Empty(t, merge(global, a))
	require.Empty(t, merge(global, b))
	require.Equal(t, shared, global.Generators["N::X"])
}

func TestMerge_ConflictingDefinitions(t *testing.T) {
	global := gen.NewSet()
	a := gen.NewSet()
	b := gen.NewSet()
	a.Generators["N::X"] = gen.Generator{FullTypeName: "N::X", SerializeFieldsBody: "    Serialize(Ser, \"a\", Val.a);\n"}
	b.Generators["N::X"] = gen.Generator{FullTypeName: "N::X", SerializeFieldsBody: "    Serialize(Ser, \"a\", Val.a);\n    Serialize(Ser, \"b\", Val.b);\n"}

	require.Empty(t, merge(global, a))
	conflicts := merge(global, b)
	require.Equal(t, []string{"N::X"}, conflicts)
	// first-seen wins
	require.Equal(t, a.Generators["N::X"], global.Generators["N::X"])
}

func TestIsStale_InputNewerThanOutput(t *testing.T) {
	dir := t.TempDir()
	unit := dir + "/unit.cpp"
	out := unit + GenSuffix
	writeFileAt(t, out, "stub", time.Now().Add(-time.Hour))
	writeFileAt(t, unit, "source", time.Now())
	require.True(t, isStale(unit, out, nil))
}

func TestIsStale_OutputNewerThanEverything(t *testing.T) {
	dir := t.TempDir()
	unit := dir + "/unit.cpp"
	out := unit + GenSuffix
	writeFileAt(t, unit, "source", time.Now().Add(-time.Hour))
	writeFileAt(t, out, "stub", time.Now())
	require.False(t, isStale(unit, out, nil))
}

func TestIsStale_HeaderNewerThanOutput(t *testing.T) {
	dir := t.TempDir()
	unit := dir + "/unit.cpp"
	out := unit + GenSuffix
	header := dir + "/unit.hpp"
	writeFileAt(t, unit, "source", time.Now().Add(-time.Hour))
	writeFileAt(t, out, "stub", time.Now().Add(-30*time.Minute))
	writeFileAt(t, header, "header", time.Now())
	require.True(t, isStale(unit, out, []string{header}))
}

func writeFileAt(t *testing.T, path, contents string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}
