// Package infra serves the unauthenticated status endpoints.
package infra

import (
	"time"
)

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	StartTime   time.Time
	EnableWebUI bool
	Prefix      string // base path the routes are also mounted under
}

// New creates a new instance of infrastructure handlers.
func New(startTime time.Time, enableWebUI bool, prefix string) *Handlers {
	return &Handlers{
		StartTime:   startTime,
		EnableWebUI: enableWebUI,
		Prefix:      prefix,
	}
}
