package astdump

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_EmptyDump(t *testing.T) {
	b := NewBuilder()
	tree, ok := b.Finish()
	require.False(t, ok)
	require.Nil(t, tree)
}

func TestBuilder_UnclassifiedLinesDiscarded(t *testing.T) {
	b := NewBuilder()
	b.AddLine("SomeJunkDecl 0x1234 <line:1:1>")
	tree, ok := b.Finish()
	require.False(t, ok)
	require.Nil(t, tree)
}

func TestBuilder_TreeFaithfulness(t *testing.T) {
	b := NewBuilder()
	b.AddLine("TranslationUnitDecl 0x1")
	b.AddLine("|-NamespaceDecl A")
	b.AddLine("| `-CXXRecordDecl class Point definition")
	b.AddLine("|   |-FieldDecl x 'int'")
	b.AddLine("|   `-FieldDecl y 'float'")
	b.AddLine("`-NamespaceDecl B")

	tree, ok := b.Finish()
	require.True(t, ok)

	tu := tree.TopLevel()
	require.Equal(t, TranslationUnitDecl, tu.Tag)
	require.Len(t, tu.Children, 2)

	nsA := tree.Child(tu, 0)
	require.Equal(t, NamespaceDecl, nsA.Tag)
	require.Equal(t, "A", nsA.Payload)
	require.Len(t, nsA.Children, 1)

	point := tree.Child(nsA, 0)
	require.Equal(t, RecordDecl, point.Tag)
	require.Equal(t, "class Point definition", point.Payload)
	require.Len(t, point.Children, 2)

	fx := tree.Child(point, 0)
	require.Equal(t, FieldDecl, fx.Tag)
	require.Equal(t, "x 'int'", fx.Payload)

	fy := tree.Child(point, 1)
	require.Equal(t, FieldDecl, fy.Tag)
	require.Equal(t, "y 'float'", fy.Payload)

	nsB := tree.Child(tu, 1)
	require.Equal(t, NamespaceDecl, nsB.Tag)
	require.Equal(t, "B", nsB.Payload)
	require.Empty(t, nsB.Children)
}

func TestBuilder_NodeBeforeTranslationUnitAttachesToSyntheticRoot(t *testing.T) {
	b := NewBuilder()
	b.AddLine("NamespaceDecl Orphan")
	tree, ok := b.Finish()
	require.True(t, ok)
	top := tree.TopLevel()
	require.Equal(t, NamespaceDecl, top.Tag)
	require.Equal(t, "Orphan", top.Payload)
}

func TestBuilder_AccessSpecMarker(t *testing.T) {
	b := NewBuilder()
	b.AddLine("CXXRecordDecl class Widget definition")
	b.AddLine("`-AccessSpecDecl public 'AutoReflect'")
	tree, ok := b.Finish()
	require.True(t, ok)
	top := tree.TopLevel()
	require.Len(t, top.Children, 1)
	marker := tree.Child(top, 0)
	require.Equal(t, AccessPublic, marker.Tag)
	require.Equal(t, "'AutoReflect'", marker.Payload)
}

func TestClassify_LongestMatch(t *testing.T) {
	kind, payload, ok := classify("ClassTemplateDecl Box")
	require.True(t, ok)
	require.Equal(t, ClassTemplateDecl, kind)
	require.Equal(t, "Box", payload)
}

func TestClassify_NoMatch(t *testing.T) {
	_, _, ok := classify("UnknownKindDecl foo")
	require.False(t, ok)
}
