// Package app wires handlers, middleware and the HTTP server together.
package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/mpgconverter/internal/storage"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware/auth"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware/ratelimit"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger *slog.Logger

	// Prefix mounts every route a second time under this path, e.g. "/mpg-converter".
	Prefix string

	// Storage backs admin authentication; admin routes are skipped when nil.
	Storage    storage.Storage
	TokenCache *auth.TokenCache

	// Limiter throttles conversion requests; nil disables limiting.
	Limiter *ratelimit.Limiter
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	if opts == nil {
		opts = &RouterOptions{}
	}

	mux := http.NewServeMux()

	// Public routes (no auth)
	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)
	mux.HandleFunc("GET /api/units", repo.Convert.Units)

	limited := ratelimit.Middleware(opts.Limiter)
	convert := limited(http.HandlerFunc(repo.Convert.Convert))
	mux.Handle("GET /api/convert", convert)
	mux.Handle("POST /api/convert", convert)

	if repo.Admin != nil && opts.Storage != nil {
		registerAdminRoutes(mux, repo, opts)
	}

	// Root returns JSON status; the "{$}" anchor keeps unknown paths at 404.
	mux.HandleFunc("GET /{$}", repo.Infra.RootStatus)

	if repo.WebUI != nil {
		registerWebUIRoutes(mux, repo)
	}

	var h http.Handler = mountPrefix(mux, opts.Prefix)

	// Apply middleware chain (order: outer to inner)
	mws := []func(http.Handler) http.Handler{middleware.CORS, middleware.RequestID}
	if opts.Logger != nil {
		mws = append(mws, middleware.RequestLogger(opts.Logger))
	}
	return middleware.Chain(h, mws...)
}

// mountPrefix serves mux both at the root and under prefix.
func mountPrefix(mux *http.ServeMux, prefix string) http.Handler {
	if prefix == "" {
		return mux
	}

	outer := http.NewServeMux()
	outer.Handle("/", mux)
	outer.Handle(prefix+"/", http.StripPrefix(prefix, mux))
	// The bare prefix is the root status page, not a redirect out of the prefix.
	outer.Handle(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/"
		r2.URL.RawPath = ""
		mux.ServeHTTP(w, r2)
	}))
	return outer
}

// registerAdminRoutes adds all admin API routes to the router.
func registerAdminRoutes(mux *http.ServeMux, repo *handler.Repo, opts *RouterOptions) {
	adminAuth := auth.AdminAuth(opts.Storage, opts.TokenCache)

	// Helper to wrap handler with admin auth
	withAuth := func(h http.HandlerFunc) http.Handler {
		return adminAuth(h)
	}

	// Password management
	mux.Handle("PUT /api/admin/password", withAuth(repo.Admin.ChangeAdminPassword))

	// Usage and logs
	mux.Handle("GET /api/admin/usage", withAuth(repo.Admin.GetUsageStats))
	mux.Handle("GET /api/admin/usage/daily", withAuth(repo.Admin.GetDailyUsage))
	mux.Handle("GET /api/admin/logs", withAuth(repo.Admin.GetRequestLogs))
	mux.Handle("DELETE /api/admin/logs", withAuth(repo.Admin.DeleteRequestLogs))

	// System info
	mux.Handle("GET /api/admin/health", withAuth(repo.Admin.AdminHealth))
	mux.Handle("GET /api/admin/info", withAuth(repo.Admin.AdminInfo))
}

// registerWebUIRoutes adds the converter form and its static assets.
func registerWebUIRoutes(mux *http.ServeMux, repo *handler.Repo) {
	webUI := repo.WebUI.ServeWebUI()

	mux.Handle("GET /web", webUI)
	mux.Handle("GET /web/", webUI)
}
