package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ukydev/vehicle-safety/internal/models"
	"github.com/ukydev/vehicle-safety/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// SessionMiddleware validates session tokens on lookup routes.
type SessionMiddleware struct {
	sessions *session.Service
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(sessions *session.Service) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Require validates the session token and adds its claims to the request
// context. Contact recording and health checks stay open.
func (m *SessionMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipSession(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		claims, err := m.sessions.ValidateToken(authHeader)
		if err != nil {
			http.Error(w, "Invalid session token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionFromContext extracts session claims from request context.
func GetSessionFromContext(ctx context.Context) (*models.SessionClaims, bool) {
	claims, ok := ctx.Value(SessionContextKey).(*models.SessionClaims)
	return claims, ok
}

// shouldSkipSession determines if session validation should be skipped for a
// given path.
func shouldSkipSession(path string) bool {
	skipPaths := []string{
		"/api/session/contact",
		"/health",
	}
	for _, skipPath := range skipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}
