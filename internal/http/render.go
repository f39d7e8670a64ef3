package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"servicios/internal/core"
)

// renderer keeps one template set per page so each page can define its own
// "title" and "content" blocks on top of the shared layout.
type renderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"money": func(m core.Money) string { return m.Display() },
	"paidLabel": func(paid bool) string {
		if paid {
			return "Pagado"
		}
		return "Pendiente"
	},
}

func newRenderer(fsys fs.FS) (*renderer, error) {
	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	rd := &renderer{pages: make(map[string]*template.Template)}
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".html")
		if name == "layout" {
			continue
		}
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, "templates/layout.html", f)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		rd.pages[name] = t
	}
	return rd, nil
}

// render writes the full page, or only its "content" block for htmx
// requests that are not boosted navigations.
func (rd *renderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := rd.pages[page]
	if !ok {
		slog.ErrorContext(r.Context(), "Unknown template", "template", page)
		InternalServerError(msgLoadFailed).Write(w)
		return
	}

	block := "layout"
	if r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true" {
		block = "content"
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed",
			"error", err,
			"template", page,
			"block", block)
		InternalServerError(msgLoadFailed).Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
