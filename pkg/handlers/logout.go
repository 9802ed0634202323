package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/auth"
)

// LogoutHandler ends the browser session by expiring the session cookie.
// The bearer token itself stays valid until it expires; revocation is the
// identity provider's job.
type LogoutHandler struct {
	sessions *auth.SessionStore
	logger   *zap.Logger
}

func NewLogoutHandler(sessions *auth.SessionStore, logger *zap.Logger) *LogoutHandler {
	return &LogoutHandler{sessions: sessions, logger: logger}
}

// RegisterRoutes registers the logout route. No auth middleware: clearing
// a session must work even when the session no longer validates.
func (h *LogoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logout", h.Logout)
}

// Logout handles POST /api/logout.
func (h *LogoutHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil {
		if err := h.sessions.Clear(r, w); err != nil {
			h.logger.Error("Failed to clear session", zap.Error(err))
			if err := ErrorResponse(w, http.StatusInternalServerError, "Failed to sign out"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
