// Package ratelimit provides per-client rate limiting using a token bucket.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/shared"
)

// bucket represents a token bucket for one client.
type bucket struct {
	tokens   float64
	lastFill time.Time
	mu       sync.Mutex
}

// idleTTL is how long an untouched bucket is kept. Any bucket refills
// completely within a minute, so dropping it after that loses nothing.
const idleTTL = time.Minute

// defaultSweepEvery is how many Allow calls pass between idle sweeps.
const defaultSweepEvery = 1024

// Limiter tracks rate limits per client address.
type Limiter struct {
	perMinute  int
	buckets    sync.Map // map[clientKey]*bucket
	calls      atomic.Uint64
	sweepEvery uint64
	now        func() time.Time
}

// New creates a limiter allowing perMinute requests per client.
// perMinute <= 0 disables limiting.
func New(perMinute int) *Limiter {
	return &Limiter{perMinute: perMinute, sweepEvery: defaultSweepEvery, now: time.Now}
}

// Allow checks if a request from key is allowed under the rate limit.
func (l *Limiter) Allow(key string) bool {
	if l == nil || l.perMinute <= 0 {
		return true
	}

	if l.sweepEvery > 0 && l.calls.Add(1)%l.sweepEvery == 0 {
		l.sweep()
	}

	capacity := float64(l.perMinute)

	// A zero lastFill refills the new bucket to capacity below.
	val, _ := l.buckets.LoadOrStore(key, &bucket{tokens: capacity})
	b := val.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	// Refill tokens based on elapsed time
	now := l.now()
	elapsed := now.Sub(b.lastFill).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * capacity / 60.0
		if b.tokens > capacity {
			b.tokens = capacity
		}
		b.lastFill = now
	}

	if b.tokens >= 1.0 {
		b.tokens--
		return true
	}
	return false
}

// sweep drops buckets that have been idle for at least idleTTL.
func (l *Limiter) sweep() {
	cutoff := l.now().Add(-idleTTL)
	l.buckets.Range(func(key, val any) bool {
		b := val.(*bucket)
		b.mu.Lock()
		idle := !b.lastFill.After(cutoff)
		b.mu.Unlock()
		if idle {
			l.buckets.CompareAndDelete(key, b)
		}
		return true
	})
}

// Middleware returns an HTTP middleware that enforces l per client IP.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientKey(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter()))
				shared.WriteJSONError(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// retryAfter is the number of seconds until one token refills.
func (l *Limiter) retryAfter() int {
	secs := 60 / l.perMinute
	if secs < 1 {
		return 1
	}
	return secs
}

// clientKey identifies the caller by remote host.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
