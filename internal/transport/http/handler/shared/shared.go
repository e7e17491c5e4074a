// Package shared holds response helpers used by every handler package.
package shared

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackContentType is the media type negotiated for binary responses.
const MsgpackContentType = "application/msgpack"

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes a JSON error response.
func WriteJSONError(w http.ResponseWriter, message string, status int) {
	WriteJSON(w, map[string]any{
		"error": map[string]any{
			"message": message,
			"code":    status,
		},
	}, status)
}

// WantsMsgpack reports whether the client asked for a msgpack response.
func WantsMsgpack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mt == MsgpackContentType || mt == "application/x-msgpack" {
			return true
		}
	}
	return false
}

// WriteNegotiated writes data as msgpack when the client accepts it, JSON otherwise.
func WriteNegotiated(w http.ResponseWriter, r *http.Request, data any, status int) {
	if !WantsMsgpack(r) {
		WriteJSON(w, data, status)
		return
	}

	b, err := msgpack.Marshal(data)
	if err != nil {
		WriteJSONError(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", MsgpackContentType)
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// IsValidAdminPassword validates the admin password format.
// Password must be alphanumeric (a-z, A-Z, 0-9) with minimum 8 characters.
func IsValidAdminPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	for _, c := range password {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}
