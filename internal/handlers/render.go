package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/indigoandlavender/slow-morocco-6/internal/i18n"
	"github.com/indigoandlavender/slow-morocco-6/internal/platform/observability"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const layoutFile = "layout.tmpl"

// parseTemplates pairs the shared layout with every page file. Pages are keyed by file
// name without extension.
func parseTemplates(fsys fs.FS, bundle *i18n.Bundle) (map[string]*template.Template, error) {
	funcMap := template.FuncMap{
		"t":        bundle.T,
		"tf":       bundle.Tf,
		"category": bundle.Category,
		"region":   bundle.Region,
	}
	layout, err := template.New("_root").Funcs(funcMap).ParseFS(fsys, "templates/"+layoutFile)
	if err != nil {
		return nil, fmt.Errorf("handlers: parse layout: %w", err)
	}
	files, err := fs.Glob(fsys, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("handlers: list templates: %w", err)
	}
	out := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := path.Base(file)
		if name == layoutFile {
			continue
		}
		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("handlers: clone layout: %w", err)
		}
		page, err := clone.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("handlers: parse %s: %w", name, err)
		}
		out[strings.TrimSuffix(name, ".tmpl")] = page
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("handlers: no page templates found")
	}
	return out, nil
}

// render executes the base layout for page into a buffer so template errors never
// produce half-written responses.
func (h *PageHandlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data PageData) {
	tmpl, ok := h.templates[page]
	if !ok {
		observability.FromContext(r.Context()).Error("handlers: unknown template", zap.String("page", page))
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		observability.FromContext(r.Context()).Error("handlers: template exec failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
