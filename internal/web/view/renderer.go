// Package view renders the gateway's HTML pages from templates embedded at
// build time. One canonical template exists per page; shared chrome (nav,
// footer, flash banner) lives in named partials.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace-web/internal/core/domain"
)

//go:embed templates/*.html
var files embed.FS

// Flash is a one-shot notification surfaced on the next rendered page.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// Base carries the fields every page template needs: session state for the
// nav, the pending flash, and the CSRF token for forms.
type Base struct {
	Title string
	Path  string
	User  *domain.User
	Flash *Flash
	CSRF  string
}

// Renderer implements echo.Renderer over the embedded template set.
type Renderer struct {
	t *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

// Render satisfies echo.Renderer; name is the page template's file name.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

var funcs = template.FuncMap{
	// humanize turns a category slug into display text ("handy_work" →
	// "handy work").
	"humanize": func(s string) string {
		return strings.ReplaceAll(s, "_", " ")
	},
	// money renders a ZAR amount without trailing zeros.
	"money": func(v float64) string {
		return "R" + strconv.FormatFloat(v, 'f', -1, 64)
	},
	"date": func(t time.Time) string {
		return t.Format("2 Jan 2006")
	},
	"join": strings.Join,
}
