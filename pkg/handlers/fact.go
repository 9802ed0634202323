package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/apperrors"
	"github.com/Sriyakreddy/movie-memory/pkg/auth"
	"github.com/Sriyakreddy/movie-memory/pkg/facts"
	"github.com/Sriyakreddy/movie-memory/pkg/services"
)

// FactResponse is the response body for GET /api/fact.
type FactResponse struct {
	Fact   FactView `json:"fact"`
	Cached bool     `json:"cached"`
}

// FactHandler serves movie facts for the authenticated user.
type FactHandler struct {
	factService services.FactService
	logger      *zap.Logger
}

// NewFactHandler creates a new fact handler.
func NewFactHandler(factService services.FactService, logger *zap.Logger) *FactHandler {
	return &FactHandler{
		factService: factService,
		logger:      logger,
	}
}

// RegisterRoutes registers the fact routes on the given mux.
func (h *FactHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/fact", authMiddleware.RequireAuth(h.Get))
}

// Get handles GET /api/fact.
// Serves a cached fact when one is fresh enough, otherwise generates a new
// one. The forceNew query parameter skips the freshness check.
func (h *FactHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "Not authenticated"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	forceNew := parseForceNew(r.URL.Query().Get("forceNew"))

	fact, cached, err := h.factService.GetFact(r.Context(), userID, forceNew)
	if err != nil {
		var genErr *facts.GenerationError
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			if err := ErrorResponse(w, http.StatusNotFound, "User not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		case errors.Is(err, apperrors.ErrNoFavoriteMovie):
			if err := ErrorResponse(w, http.StatusBadRequest, "Set your favorite movie first"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		case errors.As(err, &genErr):
			h.logger.Warn("Fact generation failed",
				zap.String("user_id", userID.String()),
				zap.String("movie", genErr.Movie),
				zap.Error(err))
			if err := ErrorResponse(w, http.StatusInternalServerError, genErr.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		default:
			h.logger.Error("Failed to get fact",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			if err := ErrorResponse(w, http.StatusInternalServerError, "Failed to generate a fact"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		}
		return
	}

	response := FactResponse{
		Fact:   toFactView(fact),
		Cached: cached,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode fact response", zap.Error(err))
	}
}

// parseForceNew accepts the truthy forms clients send.
func parseForceNew(raw string) bool {
	switch raw {
	case "1", "true", "yes":
		return true
	}
	return false
}
