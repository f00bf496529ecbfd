package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/clefworks/scorebook/pkg/slogx"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page carries the fields every template shares.
type Page struct {
	Title string
	Flash *Flash
}

// Renderer holds the parsed template set. Pages render into a buffer first
// so a template error can still produce a clean 500 instead of a torn page.
type Renderer struct {
	tpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl}, nil
}

func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := rd.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		slogx.FromContext(r.Context()).Error("template render failed", "template", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
