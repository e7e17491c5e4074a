package webui

import (
	"bytes"
	"io/fs"
	"net/http"
	"strings"

	"github.com/mandalnilabja/mpgconverter/internal/conversion"
	"github.com/mandalnilabja/mpgconverter/web"
)

// page is the data rendered into index.html.
type page struct {
	Base        string
	DefaultUnit conversion.Unit
	Inputs      []conversion.UnitInfo
	Units       []conversion.UnitInfo
	Zero        string
}

// WebUIHandler creates an HTTP handler for serving the embedded converter UI.
// Static assets are served from the embedded filesystem; every other path
// under /web renders the form.
// The handler expects to be mounted at /web/ prefix.
func (h *Handlers) WebUIHandler() http.Handler {
	staticFS, err := fs.Sub(web.FS, ".")
	if err != nil {
		// This should never happen with a valid embed
		panic("failed to create sub filesystem: " + err.Error())
	}

	fileServer := http.FileServer(http.FS(staticFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Strip /web prefix to get the actual file path
		filePath := strings.TrimPrefix(r.URL.Path, "/web")

		if strings.HasPrefix(filePath, "/static/") {
			// Directories would otherwise get a file listing.
			if strings.HasSuffix(filePath, "/") {
				http.NotFound(w, r)
				return
			}
			r.URL.Path = filePath
			fileServer.ServeHTTP(w, r)
			return
		}

		h.renderIndex(w, r)
	})
}

// renderIndex renders the form with links rooted at the path it was requested under.
func (h *Handlers) renderIndex(w http.ResponseWriter, r *http.Request) {
	var inputs []conversion.UnitInfo
	for _, u := range conversion.InputUnits() {
		info, _ := u.Info()
		inputs = append(inputs, info)
	}

	data := page{
		Base:        h.base(r),
		DefaultUnit: h.DefaultUnit,
		Inputs:      inputs,
		Units:       conversion.Catalog(),
		Zero:        conversion.Format(0),
	}

	var buf bytes.Buffer
	if err := h.index.Execute(&buf, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// base returns Prefix when the request arrived through the base path.
// RequestURI is untouched by http.StripPrefix, unlike URL.Path.
func (h *Handlers) base(r *http.Request) string {
	if h.Prefix == "" {
		return ""
	}
	uri := r.RequestURI
	if uri == h.Prefix || strings.HasPrefix(uri, h.Prefix+"/") {
		return h.Prefix
	}
	return ""
}

// ServeWebUI is a convenience method that returns the WebUI handler.
// Use this in route registration.
func (h *Handlers) ServeWebUI() http.Handler {
	return h.WebUIHandler()
}
