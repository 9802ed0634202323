package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Middleware provides HTTP authentication middleware.
// It is thin and delegates authentication logic to AuthService.
type Middleware struct {
	authService AuthService
	sessions    *SessionStore
	logger      *zap.Logger
}

// NewMiddleware creates a new auth middleware with the given AuthService.
// The session store is optional; pass nil to skip cookie refresh.
func NewMiddleware(authService AuthService, sessions *SessionStore, logger *zap.Logger) *Middleware {
	return &Middleware{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// RequireAuth validates the JWT and requires a user ID in its subject.
// Sets claims and token in context for downstream handlers. When the
// token arrived via the Authorization header, the session cookie is
// refreshed so browser clients stay signed in.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, token, err := m.authService.ValidateRequest(r)
		if err != nil {
			m.unauthorized(w, "Not authenticated")
			return
		}

		if err := m.authService.RequireSubject(claims); err != nil {
			m.unauthorized(w, "Not authenticated")
			return
		}

		if m.sessions != nil && r.Header.Get("Authorization") != "" {
			if err := m.sessions.SaveToken(r, w, token); err != nil {
				m.logger.Warn("Failed to refresh session cookie", zap.Error(err))
			}
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		ctx = context.WithValue(ctx, TokenKey, token)
		next(w, r.WithContext(ctx))
	}
}

// unauthorized returns a 401 response with JSON error body.
func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
