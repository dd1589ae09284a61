package gen

import (
	"embed"
	"fmt"
	"sync"
	"text/template"
)

const (
	tmplDecls    = "decls"
	tmplBodies   = "bodies"
	tmplGuard    = "guard"
	tmplDispatch = "dispatch"
)

const templatePattern = "templates/*.tmpl"

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	fileTmpl     *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// validateTemplates ensures every template this package renders from is
// actually defined in the embedded set, so a missing .tmpl file fails fast
// instead of producing silently empty output.
func validateTemplates() error {
	required := []string{tmplDecls, tmplBodies, tmplGuard, tmplDispatch}
	for _, name := range required {
		if fileTmpl.Lookup(name) == nil {
			return fmt.Errorf("required template %q not found", name)
		}
	}
	return nil
}

// ensureTemplates parses and validates the embedded templates exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New("gen").ParseFS(templatesFS, templatePattern)
		if tmplInitErr != nil {
			return
		}
		fileTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}
