// Package admin serves the password-protected usage and maintenance API.
package admin

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/mpgconverter/internal/storage"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware/auth"
)

// StatsTTL is how long aggregated usage responses are cached.
const StatsTTL = 30 * time.Second

// StatsCache caches usage aggregates keyed by their query string.
type StatsCache = ristretto.Cache[string, any]

// NewStatsCache creates the cache used for usage aggregates.
func NewStatsCache() (*StatsCache, error) {
	return ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters:        1e4,
		MaxCost:            1 << 20,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
}

// Handlers holds the dependencies for admin HTTP handlers.
type Handlers struct {
	Storage    storage.Storage
	StartTime  time.Time
	StatsCache *StatsCache
	TokenCache *auth.TokenCache
}

// New creates a new instance of admin handlers. Either cache may be nil.
func New(store storage.Storage, startTime time.Time, statsCache *StatsCache, tokenCache *auth.TokenCache) *Handlers {
	return &Handlers{
		Storage:    store,
		StartTime:  startTime,
		StatsCache: statsCache,
		TokenCache: tokenCache,
	}
}

// cached returns a cached aggregate or computes and stores it.
func (h *Handlers) cached(key string, compute func() (any, error)) (any, bool, error) {
	if h.StatsCache != nil {
		if v, found := h.StatsCache.Get(key); found {
			return v, true, nil
		}
	}

	v, err := compute()
	if err != nil {
		return nil, false, err
	}

	if h.StatsCache != nil {
		h.StatsCache.SetWithTTL(key, v, 1, StatsTTL)
	}
	return v, false, nil
}

// invalidateStats drops every cached aggregate.
func (h *Handlers) invalidateStats() {
	if h.StatsCache != nil {
		h.StatsCache.Clear()
	}
}

// invalidateTokens forgets verified admin tokens.
func (h *Handlers) invalidateTokens() {
	if h.TokenCache != nil {
		h.TokenCache.Clear()
	}
}
