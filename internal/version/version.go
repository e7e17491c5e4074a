// Package version holds build information set via -ldflags.
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/mandalnilabja/mpgconverter/internal/version.Version=v1.2.0"
var Version = "dev"
