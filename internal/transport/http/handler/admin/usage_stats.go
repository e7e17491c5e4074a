package admin

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/mpgconverter/internal/storage"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/shared"
)

// GetUsageStats handles GET /api/admin/usage.
func (h *Handlers) GetUsageStats(w http.ResponseWriter, r *http.Request) {
	filter := parseStatsFilter(r)

	stats, hit, err := h.cached("usage?"+r.URL.RawQuery, func() (any, error) {
		return h.Storage.GetUsageStats(filter)
	})
	if err != nil {
		shared.WriteJSONError(w, "Failed to get usage stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	setCacheHeader(w, hit)
	shared.WriteJSON(w, stats, http.StatusOK)
}

// GetDailyUsage handles GET /api/admin/usage/daily.
func (h *Handlers) GetDailyUsage(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	// Default to last 30 days if not specified
	if startDate == "" {
		startDate = time.Now().UTC().AddDate(0, 0, -30).Format("2006-01-02")
	}
	if endDate == "" {
		endDate = time.Now().UTC().Format("2006-01-02")
	}
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			shared.WriteJSONError(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	usage, hit, err := h.cached("daily?"+startDate+"&"+endDate, func() (any, error) {
		return h.Storage.GetDailyUsage(startDate, endDate)
	})
	if err != nil {
		shared.WriteJSONError(w, "Failed to get daily usage: "+err.Error(), http.StatusInternalServerError)
		return
	}

	setCacheHeader(w, hit)
	shared.WriteJSON(w, map[string]any{
		"daily_usage": usage,
		"start_date":  startDate,
		"end_date":    endDate,
	}, http.StatusOK)
}

// parseStatsFilter creates a StatsFilter from query parameters.
func parseStatsFilter(r *http.Request) storage.StatsFilter {
	filter := storage.StatsFilter{}

	if v := r.URL.Query().Get("unit"); v != "" {
		filter.Unit = v
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = &t
		}
	}

	return filter
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}
