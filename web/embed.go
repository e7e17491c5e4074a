// Package web provides the embedded converter UI files.
package web

import "embed"

// FS contains the embedded UI files (index.html, static/css, static/js).
// index.html is an html/template rendered per request.
//
//go:embed index.html static
var FS embed.FS
