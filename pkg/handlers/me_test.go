package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/apperrors"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
	"github.com/Sriyakreddy/movie-memory/pkg/services"
)

func TestMeHandler_Get(t *testing.T) {
	userID := uuid.New()
	name := "Ada"
	movie := "Inception"
	userSvc := &mockUserService{
		GetProfileFunc: func(ctx context.Context, id uuid.UUID) (*services.Profile, error) {
			return &services.Profile{
				User: &models.User{
					ID:            id,
					Email:         "ada@example.com",
					Name:          &name,
					FavoriteMovie: &movie,
				},
				RecentFacts: []*models.Fact{
					{
						ID:        uuid.New(),
						UserID:    id,
						Movie:     "Inception",
						Text:      "Inception was released in 2010.",
						CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
					},
				},
			}, nil
		},
	}
	handler := NewMeHandler(userSvc, zap.NewNop())

	req := authedRequest(http.MethodGet, "/api/me", nil, userID)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp MeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Me.Email != "ada@example.com" {
		t.Errorf("unexpected email: %s", resp.Me.Email)
	}
	if resp.Me.FavoriteMovie == nil || *resp.Me.FavoriteMovie != "Inception" {
		t.Error("favorite movie missing from profile")
	}
	if len(resp.RecentFacts) != 1 {
		t.Fatalf("expected 1 recent fact, got %d", len(resp.RecentFacts))
	}
	if resp.RecentFacts[0].CreatedAt != "2025-06-01T12:00:00Z" {
		t.Errorf("timestamps must be RFC3339 UTC, got %s", resp.RecentFacts[0].CreatedAt)
	}
}

func TestMeHandler_Get_NoClaims(t *testing.T) {
	handler := NewMeHandler(&mockUserService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler_Get_UserNotFound(t *testing.T) {
	userSvc := &mockUserService{
		GetProfileFunc: func(ctx context.Context, id uuid.UUID) (*services.Profile, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	handler := NewMeHandler(userSvc, zap.NewNop())

	req := authedRequest(http.MethodGet, "/api/me", nil, uuid.New())
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestMeHandler_UpdateMovie(t *testing.T) {
	userSvc := &mockUserService{
		UpdateFavoriteMovieFunc: func(ctx context.Context, id uuid.UUID, movie string) (string, error) {
			if movie != "  Inception  " {
				t.Errorf("raw input must reach the service, got %q", movie)
			}
			return "Inception", nil
		},
	}
	handler := NewMeHandler(userSvc, zap.NewNop())

	body := strings.NewReader(`{"favoriteMovie":"  Inception  "}`)
	req := authedRequest(http.MethodPut, "/api/me/movie", body, uuid.New())
	rec := httptest.NewRecorder()
	handler.UpdateMovie(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp UpdateMovieResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.FavoriteMovie != "Inception" {
		t.Errorf("response must echo the normalized value, got %q", resp.FavoriteMovie)
	}
}

func TestMeHandler_UpdateMovie_InvalidLength(t *testing.T) {
	userSvc := &mockUserService{
		UpdateFavoriteMovieFunc: func(ctx context.Context, id uuid.UUID, movie string) (string, error) {
			return "", fmt.Errorf("%w: too short", apperrors.ErrInvalidMovie)
		},
	}
	handler := NewMeHandler(userSvc, zap.NewNop())

	body := strings.NewReader(`{"favoriteMovie":"X"}`)
	req := authedRequest(http.MethodPut, "/api/me/movie", body, uuid.New())
	rec := httptest.NewRecorder()
	handler.UpdateMovie(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "between 2 and 120 characters") {
		t.Errorf("expected validation message, got %s", rec.Body.String())
	}
}

func TestMeHandler_UpdateMovie_BadBody(t *testing.T) {
	handler := NewMeHandler(&mockUserService{}, zap.NewNop())

	body := strings.NewReader(`{"favoriteMovie":`)
	req := authedRequest(http.MethodPut, "/api/me/movie", body, uuid.New())
	rec := httptest.NewRecorder()
	handler.UpdateMovie(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
