package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"trainerdesk/internal/adapters/restapi"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

// upstreamMessage maps a fetch or mutation failure to the user-facing text
// shown on the page. The real error is logged, never rendered.
func upstreamMessage(err error) string {
	var netErr *restapi.NetworkError
	var shapeErr *restapi.ShapeError
	var mutErr *restapi.MutationError
	switch {
	case errors.As(err, &mutErr):
		return "Saving the change failed. The training service rejected the request; your data was re-loaded and nothing was changed locally."
	case errors.As(err, &netErr):
		return "The training service could not be reached. Check your connection and try again."
	case errors.As(err, &shapeErr):
		return "The training service returned an unexpected response. Try again later."
	}
	return "Something went wrong. Try again later."
}

// isUpstreamError reports whether err came from the upstream service rather
// than from user input.
func isUpstreamError(err error) bool {
	var netErr *restapi.NetworkError
	var shapeErr *restapi.ShapeError
	var mutErr *restapi.MutationError
	return errors.As(err, &netErr) || errors.As(err, &shapeErr) || errors.As(err, &mutErr)
}

// renderUpstreamError renders the error page (HTML) or a JSON error envelope.
func renderUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("upstream_error", "path", r.URL.Path, "error", err.Error())
	msg := upstreamMessage(err)
	if isHTMLRequest(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		renderTemplate(w, r, "error.html", map[string]any{
			"Message": msg,
		})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
}

const templatesDir = "internal/adapters/http/templates"

// TemplatesDir allows tests and the server binary to point at the template
// files when the working directory is not the repository root.
var TemplatesDir = templatesDir

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	funcMap := template.FuncMap{
		"csrfToken": func() string { return csrf.Token(r) },
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"sortHeaderArgs": func(col, label, activeSort, activeDir, search string, perPage int) map[string]string {
			nextDir := "asc"
			if col == activeSort && activeDir == "asc" {
				nextDir = "desc"
			}
			return map[string]string{
				"Col": col, "Label": label,
				"ActiveSort": activeSort, "ActiveDir": activeDir, "NextDir": nextDir,
				"Search":  search,
				"PerPage": fmt.Sprintf("%d", perPage),
			}
		},
		"paginationQuery": func(page int, sort, dir, search string, perPage int) template.URL {
			q := fmt.Sprintf("page=%d", page)
			if sort != "" {
				q += "&sort=" + sort
			}
			if dir != "" {
				q += "&dir=" + dir
			}
			if search != "" {
				q += "&q=" + search
			}
			if perPage > 0 {
				q += fmt.Sprintf("&per_page=%d", perPage)
			}
			return template.URL(q)
		},
	}

	layoutPath := filepath.Join(TemplatesDir, "layout.html")
	pagePath := filepath.Join(TemplatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}
