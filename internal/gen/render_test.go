package gen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_S1_SimpleRecord(t *testing.T) {
	g := Generator{
		FullTypeName:          "Point",
		SerializeFieldsBody:   "    Serialize(Ser, \"x\", Val.x);\n    Serialize(Ser, \"y\", Val.y);\n",
		DeserializeFieldsBody: "    Deserialize(Ser, \"x\", Val.x);\n    Deserialize(Ser, \"y\", Val.y);\n",
	}
	out, err := RenderGuarded(g)
	require.NoError(t, err)
	require.Contains(t, out, "#ifndef Point_IMPL")
	require.Contains(t, out, "#define Point_IMPL")
	require.Contains(t, out, "void SerializeFields(Serializer& Ser, Point const& Val) {")
	require.Contains(t, out, "Serialize(Ser, \"x\", Val.x);")
	require.Contains(t, out, "#endif // Point_IMPL")
}

func TestRender_TemplatedType(t *testing.T) {
	g := Generator{
		TemplatesHeader:       "template<typename T>",
		FullTypeName:          "Box<T>",
		SerializeFieldsBody:   "    Serialize(Ser, \"value\", Val.value);\n",
		DeserializeFieldsBody: "    Deserialize(Ser, \"value\", Val.value);\n",
	}
	out, err := Render(g, Regular)
	require.NoError(t, err)
	require.Contains(t, out, "template<typename T>\ninline void Serialize")
	require.Contains(t, out, "Box<T>")
}

func TestGuardMacro(t *testing.T) {
	require.Equal(t, "A__B__Point_IMPL", GuardMacro("A::B::Point"))
	require.Equal(t, "Box_T___IMPL", GuardMacro("Box<T,>"))
}

func TestForwardDeclMode(t *testing.T) {
	g := Generator{FullTypeName: "Point"}
	out, err := Render(g, ForwardDecl)
	require.NoError(t, err)
	require.Contains(t, out, "void Serialize(Serializer& Ser, char const* name, Point const& Val);")
	require.NotContains(t, out, "BeginObject")
}

func TestDispatchTable_Deterministic(t *testing.T) {
	out, err := DispatchTable([]string{"A::X", "B::Y"})
	require.NoError(t, err)
	ix := indexOf(out, "A::X")
	iy := indexOf(out, "B::Y")
	require.True(t, ix >= 0 && iy >= 0 && ix < iy)
	require.Contains(t, out, `throw std::runtime_error("Unknown type " + Type);`)
	require.Contains(t, out, `throw std::runtime_error("Unsupported type " + std::string(Val.GetAny().type().name()));`)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
