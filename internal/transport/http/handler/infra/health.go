package infra

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/mpgconverter/internal/version"
)

// RootStatus returns JSON status and version information at /.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"name":    "mpgconverter",
		"version": version.Version,
		"status":  "running",
		"api":     "/api/convert",
		"units":   "/api/units",
		"admin":   "/api/admin",
	}
	if h.EnableWebUI {
		response["web_ui"] = "/web"
	}
	if h.Prefix != "" {
		response["base_path"] = h.Prefix
	}
	shared.WriteJSON(w, response, http.StatusOK)
}

// HealthCheck handler returns the application health status.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, map[string]any{
		"status":      "active",
		"app":         "mpgconverter",
		"uptime_secs": int64(time.Since(h.StartTime).Seconds()),
	}, http.StatusOK)
}
