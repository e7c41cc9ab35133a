package server

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"strings"

	"svgserve/internal/resolver"
	"svgserve/internal/svg"
)

//go:embed templates/layout.html
var layoutHTML string

var layoutTemplate = template.Must(template.New("layout").Parse(layoutHTML))

// viewData is the payload rendered into the layout template
type viewData struct {
	Title string
	SVG   template.HTML
}

// handleView renders an HTML page embedding a width-normalized copy of an
// SVG. Page addressing: the page name is lowercased, ':' becomes '/', and
// '.svg' is appended, so /view/Nested:Icon maps to nested/icon.svg. The
// mapped path goes through the same resolver as raw file requests, so the
// root boundary holds here too.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r) {
		return
	}

	page := strings.TrimPrefix(r.URL.Path, "/view/")
	if page == "" {
		http.NotFound(w, r)
		return
	}

	requestPath := "/" + strings.ReplaceAll(strings.ToLower(page), ":", "/") + ".svg"

	res := resolver.Resolve(requestPath, s.cfg)
	if res.Kind != resolver.KindServe {
		http.NotFound(w, r)
		return
	}

	data, err := s.readFile(res.FilePath)
	if err != nil {
		s.logger.Error("File read failed after resolution", map[string]interface{}{
			"error":     err.Error(),
			"requestID": GetRequestID(r.Context()),
		})
		http.Error(w, "Failed to load SVG", http.StatusInternalServerError)
		return
	}

	content, err := svg.FullWidth(string(data))
	if err != nil {
		s.logger.Error("SVG rewrite failed", map[string]interface{}{
			"page":      page,
			"error":     err.Error(),
			"requestID": GetRequestID(r.Context()),
		})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	// Render to a buffer first so a template failure can still become a
	// clean 500 instead of a torn response
	var buf bytes.Buffer
	if err := layoutTemplate.Execute(&buf, viewData{Title: page, SVG: template.HTML(content)}); err != nil {
		s.logger.Error("Template rendering failed", map[string]interface{}{
			"error":     err.Error(),
			"requestID": GetRequestID(r.Context()),
		})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
