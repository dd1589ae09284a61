// Package astdump reconstructs a tree from a Clang AST-dump line stream.
//
// The dump is a textual, indentation-and-glyph-prefixed rendering of the
// compiler's internal AST. This package classifies a small closed set of
// node kinds and discards everything else, producing an arena-backed tree
// that the rest of the pipeline walks read-only.
package astdump

// Kind is the closed set of AST-dump node tags the builder recognizes.
// Any line whose tag token does not match one of these is still consumed
// (to keep indent arithmetic correct) but never attached to the tree.
type Kind int

const (
	Invalid Kind = iota
	FieldDecl
	RecordDecl
	NamespaceDecl
	ClassTemplateDecl
	TemplateTypeParmDecl
	NonTypeTemplateParmDecl
	TemplateTemplateParmDecl
	AccessPublic
	AccessPrivate
	EnumDecl
	TranslationUnitDecl
)

func (k Kind) String() string {
	switch k {
	case FieldDecl:
		return "FieldDecl"
	case RecordDecl:
		return "RecordDecl"
	case NamespaceDecl:
		return "NamespaceDecl"
	case ClassTemplateDecl:
		return "ClassTemplateDecl"
	case TemplateTypeParmDecl:
		return "TemplateTypeParmDecl"
	case NonTypeTemplateParmDecl:
		return "NonTypeTemplateParmDecl"
	case TemplateTemplateParmDecl:
		return "TemplateTemplateParmDecl"
	case AccessPublic:
		return "AccessPublic"
	case AccessPrivate:
		return "AccessPrivate"
	case EnumDecl:
		return "EnumDecl"
	case TranslationUnitDecl:
		return "TranslationUnitDecl"
	default:
		return "Invalid"
	}
}

// IsTemplateParam reports whether k is one of the three template-parameter
// declaration kinds (used by the scope walker's template-building routine).
func (k Kind) IsTemplateParam() bool {
	switch k {
	case TemplateTypeParmDecl, NonTypeTemplateParmDecl, TemplateTemplateParmDecl:
		return true
	default:
		return false
	}
}

// tagTable is the closed set of recognized tag tokens. classify scans every
// entry and keeps the longest matching token, so the order of entries here
// does not decide which token wins.
var tagTable = []struct {
	token string
	kind  Kind
}{
	{"TranslationUnitDecl", TranslationUnitDecl},
	{"NamespaceDecl", NamespaceDecl},
	{"ClassTemplateDecl", ClassTemplateDecl},
	{"TemplateTemplateParmDecl", TemplateTemplateParmDecl},
	{"TemplateTypeParmDecl", TemplateTypeParmDecl},
	{"NonTypeTemplateParmDecl", NonTypeTemplateParmDecl},
	{"CXXRecordDecl", RecordDecl},
	{"RecordDecl", RecordDecl},
	{"FieldDecl", FieldDecl},
	{"EnumDecl", EnumDecl},
	{"AccessSpecDecl public", AccessPublic},
	{"AccessSpecDecl private", AccessPrivate},
}
