// Package view renders the dashboard as server-side HTML.
//
// Every exported render function is a pure function of its props: the same
// props always produce the same markup, and nothing is fetched or stored.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/format"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Renderer executes the embedded templates.
type Renderer struct {
	templates *template.Template
	dates     *format.DateFormatter
}

// NewRenderer parses the templates. Service dates are formatted with dates;
// nil means en-US in UTC.
func NewRenderer(dates *format.DateFormatter) (*Renderer, error) {
	if dates == nil {
		dates = format.NewDateFormatter("en-US", time.UTC)
	}

	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{templates: templates, dates: dates}, nil
}

// StaticHandler serves the stylesheet. Mount it under /static/.
func StaticHandler() http.Handler {
	static, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(static))
}

// execute renders into a buffer first so a template error never leaves a
// half-written response.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
