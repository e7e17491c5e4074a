// Package handler composes the HTTP handler groups served by the router.
package handler

import (
	"time"

	"github.com/mandalnilabja/mpgconverter/internal/conversion"
	"github.com/mandalnilabja/mpgconverter/internal/storage"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/admin"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/convert"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/webui"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware/auth"
	"github.com/mandalnilabja/mpgconverter/internal/usage"
)

// Options configures NewRepo.
type Options struct {
	DefaultUnit conversion.Unit
	Prefix      string
	EnableWebUI bool

	// Storage is nil when usage logging is disabled; admin routes are then absent.
	Storage    storage.Storage
	Recorder   *usage.Recorder
	StatsCache *admin.StatsCache
	TokenCache *auth.TokenCache
}

// Repo composes all domain-specific handlers.
// Admin and WebUI are nil when their feature is disabled.
type Repo struct {
	Convert *convert.Handlers
	Admin   *admin.Handlers
	WebUI   *webui.Handlers
	Infra   *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(opts Options) (*Repo, error) {
	startTime := time.Now()

	repo := &Repo{
		Convert: convert.New(opts.DefaultUnit, opts.Recorder),
		Infra:   infra.New(startTime, opts.EnableWebUI, opts.Prefix),
	}

	if opts.Storage != nil {
		repo.Admin = admin.New(opts.Storage, startTime, opts.StatsCache, opts.TokenCache)
	}

	if opts.EnableWebUI {
		ui, err := webui.New(opts.DefaultUnit, opts.Prefix)
		if err != nil {
			return nil, err
		}
		repo.WebUI = ui
	}

	return repo, nil
}
