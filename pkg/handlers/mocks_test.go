package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"

	"github.com/Sriyakreddy/movie-memory/pkg/auth"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
	"github.com/Sriyakreddy/movie-memory/pkg/services"
)

// mockUserService is a function-field mock for services.UserService.
type mockUserService struct {
	GetProfileFunc          func(ctx context.Context, userID uuid.UUID) (*services.Profile, error)
	UpdateFavoriteMovieFunc func(ctx context.Context, userID uuid.UUID, movie string) (string, error)
}

func (m *mockUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*services.Profile, error) {
	return m.GetProfileFunc(ctx, userID)
}

func (m *mockUserService) UpdateFavoriteMovie(ctx context.Context, userID uuid.UUID, movie string) (string, error) {
	return m.UpdateFavoriteMovieFunc(ctx, userID, movie)
}

// mockFactService is a function-field mock for services.FactService.
type mockFactService struct {
	GetFactFunc func(ctx context.Context, userID uuid.UUID, forceNew bool) (*models.Fact, bool, error)
}

func (m *mockFactService) GetFact(ctx context.Context, userID uuid.UUID, forceNew bool) (*models.Fact, bool, error) {
	return m.GetFactFunc(ctx, userID, forceNew)
}

// authedRequest builds a request whose context carries claims for userID,
// as the auth middleware would have set them.
func authedRequest(method, target string, body io.Reader, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, body)
	claims := &auth.Claims{}
	claims.Subject = userID.String()
	ctx := context.WithValue(req.Context(), auth.ClaimsKey, claims)
	return req.WithContext(ctx)
}
