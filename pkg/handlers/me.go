// Package handlers contains the HTTP surface: profile, favorite-movie
// updates, fact retrieval, health checks, and the MCP endpoint.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/apperrors"
	"github.com/Sriyakreddy/movie-memory/pkg/auth"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
	"github.com/Sriyakreddy/movie-memory/pkg/services"
)

// MeView is the profile payload for the authenticated user.
type MeView struct {
	ID            string  `json:"id"`
	Name          *string `json:"name"`
	Email         string  `json:"email"`
	Image         *string `json:"image"`
	FavoriteMovie *string `json:"favoriteMovie"`
}

// FactView is the wire form of a stored fact.
type FactView struct {
	ID        string `json:"id"`
	Movie     string `json:"movie"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// MeResponse is the response body for GET /api/me.
type MeResponse struct {
	Me          MeView     `json:"me"`
	RecentFacts []FactView `json:"recentFacts"`
}

// UpdateMovieRequest is the request body for PUT /api/me/movie.
type UpdateMovieRequest struct {
	FavoriteMovie string `json:"favoriteMovie"`
}

// UpdateMovieResponse echoes the normalized value the server persisted.
type UpdateMovieResponse struct {
	FavoriteMovie string `json:"favoriteMovie"`
}

// MeHandler handles profile-related HTTP requests.
type MeHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewMeHandler creates a new profile handler.
func NewMeHandler(userService services.UserService, logger *zap.Logger) *MeHandler {
	return &MeHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers the profile routes on the given mux.
func (h *MeHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/me", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("PUT /api/me/movie", authMiddleware.RequireAuth(h.UpdateMovie))
}

// Get handles GET /api/me.
// Returns the authenticated user's profile and their most recent facts.
func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "Not authenticated"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "User not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to load profile",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "Failed to load profile"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := MeResponse{
		Me:          toMeView(profile.User),
		RecentFacts: toFactViews(profile.RecentFacts),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode profile response", zap.Error(err))
	}
}

// UpdateMovie handles PUT /api/me/movie.
// Normalizes and validates the submitted title, persists it, and echoes
// the stored value so clients can reconcile optimistic updates.
func (h *MeHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "Not authenticated"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	saved, err := h.userService.UpdateFavoriteMovie(r.Context(), userID, req.FavoriteMovie)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidMovie):
			if err := ErrorResponse(w, http.StatusBadRequest, models.ValidateMovieInput(models.NormalizeMovieInput(req.FavoriteMovie))); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		case errors.Is(err, apperrors.ErrNotFound):
			if err := ErrorResponse(w, http.StatusNotFound, "User not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		default:
			h.logger.Error("Failed to update favorite movie",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			if err := ErrorResponse(w, http.StatusInternalServerError, "Failed to update favorite movie"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, UpdateMovieResponse{FavoriteMovie: saved}); err != nil {
		h.logger.Error("Failed to encode movie update response", zap.Error(err))
	}
}

func toMeView(u *models.User) MeView {
	return MeView{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		Image:         u.Image,
		FavoriteMovie: u.FavoriteMovie,
	}
}

func toFactViews(facts []*models.Fact) []FactView {
	views := make([]FactView, 0, len(facts))
	for _, f := range facts {
		views = append(views, toFactView(f))
	}
	return views
}

func toFactView(f *models.Fact) FactView {
	return FactView{
		ID:        f.ID.String(),
		Movie:     f.Movie,
		Text:      f.Text,
		CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
	}
}
