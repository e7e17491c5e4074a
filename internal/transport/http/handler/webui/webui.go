// Package webui serves the embedded converter form.
package webui

import (
	"html/template"

	"github.com/mandalnilabja/mpgconverter/internal/conversion"
	"github.com/mandalnilabja/mpgconverter/web"
)

// Handlers holds the dependencies for web UI HTTP handlers.
type Handlers struct {
	DefaultUnit conversion.Unit
	Prefix      string
	index       *template.Template
}

// New creates a new instance of web UI handlers.
// It fails only if the embedded index template does not parse.
func New(defaultUnit conversion.Unit, prefix string) (*Handlers, error) {
	index, err := template.ParseFS(web.FS, "index.html")
	if err != nil {
		return nil, err
	}
	return &Handlers{
		DefaultUnit: defaultUnit,
		Prefix:      prefix,
		index:       index,
	}, nil
}
