package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/example/event-registration/internal/validation"
)

//go:embed templates/*.html
var templateFiles embed.FS

// View names understood by the renderer.
const (
	ViewEventList        = "events-enhanced"
	ViewEventForm        = "event-form"
	ViewRegistrationList = "registrations"
	ViewRegistrationForm = "registration-form"
	ViewError            = "error"
)

var views = []string{
	ViewEventList,
	ViewEventForm,
	ViewRegistrationList,
	ViewRegistrationForm,
	ViewError,
}

// ErrUnknownView is returned when no template is registered under the requested name.
var ErrUnknownView = errors.New("http: unknown view")

// Model is the key/value context handed to a view.
type Model map[string]any

// Renderer writes a named view using the supplied model.
type Renderer interface {
	Render(w io.Writer, view string, model Model) error
}

// TemplateRenderer renders the embedded html/template views inside a shared layout.
type TemplateRenderer struct {
	views map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"formatDate":  formatDate,
	"displayDate": displayDate,
	"fieldError":  fieldError,
}

// NewTemplateRenderer parses every embedded view.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	parsed := make(map[string]*template.Template, len(views))
	for _, view := range views {
		tmpl, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFiles,
			"templates/layout.html",
			"templates/"+view+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse view %s: %w", view, err)
		}
		parsed[view] = tmpl
	}
	return &TemplateRenderer{views: parsed}, nil
}

// Render executes the layout with the named view's content blocks.
func (r *TemplateRenderer) Render(w io.Writer, view string, model Model) error {
	tmpl, ok := r.views[view]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownView, view)
	}
	return tmpl.ExecuteTemplate(w, "layout", model)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return validation.FormatDate(t)
}

func displayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("Mon, 02 Jan 2006 15:04")
}

func fieldError(errs validation.FieldErrors, field string) string {
	if errs == nil {
		return ""
	}
	return errs[field]
}
