// Package renderer turns a listing into an Apache-style index page.
package renderer

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed views/*.html
var views embed.FS

// TemplateRenderer executes named templates parsed from the embedded views.
type TemplateRenderer struct {
	Templates map[string]*template.Template
}

// New creates a new TemplateRenderer with pre-parsed templates
func New() *TemplateRenderer {
	r := &TemplateRenderer{
		Templates: make(map[string]*template.Template),
	}
	r.Templates["index"] = template.Must(template.ParseFS(views, "views/index.html"))
	return r
}

// Render executes the named block of template name.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}) error {
	tmpl, ok := t.Templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	return tmpl.ExecuteTemplate(w, name, data)
}
