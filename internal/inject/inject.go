// Package inject adds the neighbour-toggle behaviour to a rendered page.
//
// Clicking a single node flips the hidden flag of every node and edge
// directly connected to it. The flip is stateless, so two overlapping
// toggles can leave a shared neighbour in either state.
package inject

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// BodyMarker is the tag the script is inserted in front of.
const BodyMarker = "</body>"

//go:embed toggle.js
var toggleJS string

// ErrBodyMarkerNotFound is returned when the page has no closing body tag.
var ErrBodyMarkerNotFound = errors.New("</body> tag not found in the HTML file")

// InjectionError reports that the behaviour could not be added to a page.
type InjectionError struct {
	Path string
	Err  error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("error injecting custom JavaScript into %s: %v", e.Path, e.Err)
}

func (e *InjectionError) Unwrap() error {
	return e.Err
}

// Options controls how the script is produced.
type Options struct {
	Minify bool
}

// Script returns the complete script element for opts.
func Script(opts Options) (string, error) {
	body := toggleJS
	if opts.Minify {
		minified, err := minify(body)
		if err != nil {
			return "", err
		}
		body = minified
	}
	return "<script type=\"text/javascript\">\n" + body + "</script>\n", nil
}

// Inject inserts the toggle script immediately before the last </body> of the
// page at path. When the marker is missing the file is left untouched.
func Inject(path string, opts Options) error {
	info, err := os.Stat(path)
	if err != nil {
		return &InjectionError{Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &InjectionError{Path: path, Err: err}
	}
	page := string(data)

	pos := strings.LastIndex(page, BodyMarker)
	if pos == -1 {
		return &InjectionError{Path: path, Err: ErrBodyMarkerNotFound}
	}

	script, err := Script(opts)
	if err != nil {
		return &InjectionError{Path: path, Err: err}
	}

	out := page[:pos] + script + page[pos:]
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return &InjectionError{Path: path, Err: err}
	}
	return nil
}

func minify(src string) (string, error) {
	result := api.Transform(src, api.TransformOptions{
		Loader:           api.LoaderJS,
		MinifyWhitespace: true,
		MinifySyntax:     true,
		Target:           api.ES2015,
	})

	if len(result.Errors) > 0 {
		var errMsg string
		for _, err := range result.Errors {
			if err.Location != nil {
				errMsg += fmt.Sprintf("%d:%d: %s\n", err.Location.Line, err.Location.Column, err.Text)
			} else {
				errMsg += err.Text + "\n"
			}
		}
		return "", fmt.Errorf("esbuild errors:\n%s", errMsg)
	}

	return string(result.Code), nil
}
