package gencache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bennywwg/autoreflect/internal/gen"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(cwd)) }()

	set := gen.NewSet()
	set.Generators["Point"] = gen.Generator{
		FullTypeName:          "Point",
		SerializeFieldsBody:   "    Serialize(Ser, \"x\", Val.x);\n",
		DeserializeFieldsBody: "    Deserialize(Ser, \"x\", Val.x);\n",
	}
	set.NonTemplateTypes["Point"] = struct{}{}

	require.NoError(t, Save("unit.cpp", set))
	require.FileExists(t, filepath.Join(Dir, "unit.cpp"))

	loaded, ok := Load("unit.cpp")
	require.True(t, ok)
	require.Equal(t, set.Generators["Point"], loaded.Generators["Point"])
	_, hasPoint := loaded.NonTemplateTypes["Point"]
	require.True(t, hasPoint)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(cwd)) }()

	_, ok := Load("does-not-exist.cpp")
	require.False(t, ok)
}
