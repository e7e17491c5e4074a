// Package auth provides authentication middleware for HTTP routes.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/mpgconverter/internal/storage"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/shared"
)

// VerifiedTTL is how long a successful password check is remembered.
const VerifiedTTL = 5 * time.Minute

// TokenCache remembers admin tokens that passed argon2 verification,
// keyed by a digest of the token and the stored hash.
type TokenCache = ristretto.Cache[string, bool]

// NewTokenCache creates a small cache for verified admin tokens.
func NewTokenCache() (*TokenCache, error) {
	return ristretto.NewCache(&ristretto.Config[string, bool]{
		NumCounters:        1e4,
		MaxCost:            1 << 10,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
}

// AdminAuth middleware protects admin routes using the stored password hash.
// Requires Bearer token authentication with the admin password.
// cache may be nil, in which case every request pays for argon2.
func AdminAuth(store storage.Storage, cache *TokenCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w, "authorization required")
				return
			}
			password := strings.TrimPrefix(auth, "Bearer ")

			hash, err := store.GetAdminPasswordHash()
			if err != nil {
				shared.WriteJSONError(w, "server error", http.StatusInternalServerError)
				return
			}
			if hash == "" {
				writeUnauthorized(w, "admin not configured")
				return
			}

			// Including the hash makes a password change invalidate old entries.
			key := cacheKey(password, hash)
			if cache != nil {
				if ok, found := cache.Get(key); found && ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			valid, err := storage.VerifyPassword(password, hash)
			if err != nil || !valid {
				writeUnauthorized(w, "invalid credentials")
				return
			}

			// Upgrade hashes made with weaker parameters while the password is at hand.
			if storage.NeedsRehash(hash, storage.DefaultArgon2Params()) {
				if upgraded, err := storage.HashPassword(password, storage.DefaultArgon2Params()); err == nil {
					if err := store.SetAdminPasswordHash(upgraded); err == nil {
						hash = upgraded
						key = cacheKey(password, hash)
					}
				}
			}

			if cache != nil {
				cache.SetWithTTL(key, true, 1, VerifiedTTL)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func cacheKey(password, hash string) string {
	sum := sha256.Sum256([]byte(password + "\x00" + hash))
	return "admin:" + hex.EncodeToString(sum[:])
}

// writeUnauthorized writes a JSON 401 response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	shared.WriteJSONError(w, message, http.StatusUnauthorized)
}
