// FilePath: api/middleware/api.middleware.auth.go
package middleware

import (
	"crypto/subtle"
	"net/http"

	nuts "github.com/vaudience/go-nuts"
)

// IngestKeyMiddleware guards the ingestion endpoint with a static API key.
// An empty configured key disables the check.
type IngestKeyMiddleware struct {
	key string
}

// NewIngestKeyMiddleware creates a new IngestKeyMiddleware
func NewIngestKeyMiddleware(key string) *IngestKeyMiddleware {
	return &IngestKeyMiddleware{key: key}
}

// Authenticate validates the X-Api-Key header against the configured key
func (m *IngestKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.key == "" {
			next.ServeHTTP(w, r)
			return
		}

		provided := r.Header.Get("X-Api-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.key)) != 1 {
			nuts.L.Warnf("[Auth] Rejected ingest request from %s", r.RemoteAddr)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"type":"authentication","message":"invalid api key"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
