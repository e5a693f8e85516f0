// Package render writes a scene into a self-contained HTML page driven by the
// vis-network browser library. The page exposes the globals nodes, edges and
// network so post-processing scripts can reach them.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/leapstack-labs/dotviz/internal/scene"
)

//go:embed templates/network.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/network.html.tmpl"))

// DefaultVisURL is the vis-network bundle loaded by the page.
const DefaultVisURL = "https://unpkg.com/vis-network@9.1.9/standalone/umd/vis-network.min.js"

var (
	colorValidator    = validator.New()
	namedColorPattern = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// ValidColor reports whether c is a CSS colour the page can embed: a hex,
// rgb(a) or hsl(a) value, or a colour keyword.
func ValidColor(c string) bool {
	return namedColorPattern.MatchString(c) || colorValidator.Var(c, "iscolor") == nil
}

// Page holds the page-level settings around the network canvas.
type Page struct {
	Title     string
	Heading   string
	Height    string
	Width     string
	BGColor   string
	FontColor string
	VisURL    string
}

// DefaultPage returns the standard page settings.
func DefaultPage() Page {
	return Page{
		Title:     "Interactive Graph",
		Height:    "1000px",
		Width:     "100%",
		BGColor:   "#ffffff",
		FontColor: "black",
		VisURL:    DefaultVisURL,
	}
}

// WithDefaults fills every empty field from DefaultPage. Heading stays empty
// when unset.
func (p Page) WithDefaults() Page {
	def := DefaultPage()
	if p.Title == "" {
		p.Title = def.Title
	}
	if p.Height == "" {
		p.Height = def.Height
	}
	if p.Width == "" {
		p.Width = def.Width
	}
	if p.BGColor == "" {
		p.BGColor = def.BGColor
	}
	if p.FontColor == "" {
		p.FontColor = def.FontColor
	}
	if p.VisURL == "" {
		p.VisURL = def.VisURL
	}
	return p
}

// RenderError reports that the artifact could not be produced.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("error generating interactive graph: %v", e.Err)
	}
	return fmt.Sprintf("error generating interactive graph %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

type pageData struct {
	Page
	Background template.CSS
	TextColor  template.CSS
	Nodes      template.JS
	Edges      template.JS
	Options    template.JS
}

// Render executes the page template for s into w.
func Render(w io.Writer, s *scene.Scene, page Page) error {
	data := pageData{Page: page}

	if !ValidColor(page.BGColor) {
		return &RenderError{Err: fmt.Errorf("invalid background colour %q", page.BGColor)}
	}
	if !ValidColor(page.FontColor) {
		return &RenderError{Err: fmt.Errorf("invalid font colour %q", page.FontColor)}
	}
	data.Background = template.CSS(page.BGColor)  //nolint:gosec // G203: checked by ValidColor
	data.TextColor = template.CSS(page.FontColor) //nolint:gosec // G203: checked by ValidColor

	var err error
	if data.Nodes, err = marshalJS(s.Nodes); err != nil {
		return &RenderError{Err: fmt.Errorf("failed to encode nodes: %w", err)}
	}
	if data.Edges, err = marshalJS(s.Edges); err != nil {
		return &RenderError{Err: fmt.Errorf("failed to encode edges: %w", err)}
	}
	if data.Options, err = marshalJS(s.Options); err != nil {
		return &RenderError{Err: fmt.Errorf("failed to encode options: %w", err)}
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return &RenderError{Err: fmt.Errorf("failed to execute template: %w", err)}
	}
	return nil
}

// Write renders s and writes the page to path in a single write, so a failed
// render never leaves a partial file behind.
func Write(path string, s *scene.Scene, page Page) error {
	var buf bytes.Buffer
	if err := Render(&buf, s, page); err != nil {
		if re, ok := err.(*RenderError); ok {
			re.Path = path
		}
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // G306: the artifact is meant to be opened in a browser
		return &RenderError{Path: path, Err: err}
	}
	return nil
}

// marshalJS encodes v as JSON for direct inclusion in a script block.
// encoding/json escapes <, > and & so the result cannot close the script.
func marshalJS(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil //nolint:gosec // G203: JSON output with HTML-sensitive characters escaped
}
