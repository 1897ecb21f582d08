// Package ui renders the user interface: a card per user, the user
// interface panel with its forms, and the page that mounts it.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	domain "userdeck/internal/domain/user"
)

// BackendName is the label the page mounts the user interface with. It picks
// the colour scheme and the path segment of the update endpoint.
const BackendName = "calm"

// Template names
const (
	CardTemplate          = "card"
	UserInterfaceTemplate = "user_interface"
	PageTemplate          = "page"
)

const pageTitle = "Users"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Style holds the CSS classes chosen by a backend label.
type Style struct {
	Background string
	Button     string
}

var (
	backgroundColours = map[string]string{"calm": "bg-emerald-800"}
	buttonColours     = map[string]string{"calm": "bg-emerald-800"}
)

// StyleFor returns the classes for label, falling back to gray.
func StyleFor(label string) Style {
	s := Style{Background: "bg-gray-200", Button: "bg-gray-500 hover:bg-gray-600"}
	if c, ok := backgroundColours[label]; ok {
		s.Background = c
	}
	if c, ok := buttonColours[label]; ok {
		s.Button = c
	}
	return s
}

// View is the data the user interface and page templates render.
type View struct {
	Title       string
	BackendName string
	Style       Style
	State       domain.State
}

// NewPageView builds the page's view of state, with the page's fixed label.
func NewPageView(state domain.State) View {
	return View{
		Title:       pageTitle,
		BackendName: BackendName,
		Style:       StyleFor(BackendName),
		State:       state,
	}
}

// Templates parses the embedded templates.
func Templates() (*template.Template, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Static returns the embedded static assets rooted at their directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return sub
}

// Renderer holds the parsed templates.
type Renderer struct {
	t *template.Template
}

// NewRenderer creates a Renderer over the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := Templates()
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

// Template exposes the parsed templates for gin's HTML renderer.
func (r *Renderer) Template() *template.Template {
	return r.t
}
