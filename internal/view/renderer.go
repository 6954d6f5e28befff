// Package view renders HTML pages for the public site and the admin
// panel.  Templates are embedded in the binary and parsed once at
// startup; each page template is addressed by name from the handlers.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Renderer implements echo.Renderer over the embedded template set.
type Renderer struct {
	t *template.Template
}

// New parses the embedded templates.  It fails fast so a broken
// template is caught at startup rather than on first render.
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"date":  func(t time.Time) string { return t.Format("02 Jan 2006") },
	}).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

// Render executes the named page template with the given data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}
