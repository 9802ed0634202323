package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/apperrors"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
)

func TestGetProfile_ReturnsUserAndRecentFacts(t *testing.T) {
	userID := uuid.New()
	stored := []*models.Fact{
		{ID: uuid.New(), UserID: userID, Movie: "Inception", Text: "Fact one."},
		{ID: uuid.New(), UserID: userID, Movie: "Alien", Text: "Fact two."},
	}

	users := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return testUser(id, "Inception"), nil
		},
	}
	factsRepo := &mockFactRepository{
		GetRecentFunc: func(ctx context.Context, id uuid.UUID, limit int) ([]*models.Fact, error) {
			assert.Equal(t, 10, limit)
			return stored, nil
		},
	}

	profile, err := NewUserService(users, factsRepo, zap.NewNop()).GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.User.ID)
	assert.Equal(t, stored, profile.RecentFacts)
}

func TestGetProfile_UserNotFound(t *testing.T) {
	users := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return nil, apperrors.ErrNotFound
		},
	}

	_, err := NewUserService(users, &mockFactRepository{}, zap.NewNop()).
		GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateFavoriteMovie_NormalizesAndPersists(t *testing.T) {
	var persisted string
	users := &mockUserRepository{
		UpdateFavoriteMovieFunc: func(ctx context.Context, id uuid.UUID, movie string) error {
			persisted = movie
			return nil
		},
	}

	saved, err := NewUserService(users, &mockFactRepository{}, zap.NewNop()).
		UpdateFavoriteMovie(context.Background(), uuid.New(), "  Inception  ")
	require.NoError(t, err)
	assert.Equal(t, "Inception", saved)
	assert.Equal(t, "Inception", persisted)
}

func TestUpdateFavoriteMovie_RejectsInvalidLengths(t *testing.T) {
	users := &mockUserRepository{
		UpdateFavoriteMovieFunc: func(ctx context.Context, id uuid.UUID, movie string) error {
			t.Fatal("invalid input must not reach the repository")
			return nil
		},
	}
	svc := NewUserService(users, &mockFactRepository{}, zap.NewNop())

	for _, input := range []string{"", " ", "X", strings.Repeat("y", 121)} {
		_, err := svc.UpdateFavoriteMovie(context.Background(), uuid.New(), input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidMovie, "input %q", input)
	}

	// Whitespace padding around an over-long core still fails after trimming.
	_, err := svc.UpdateFavoriteMovie(context.Background(), uuid.New(), "  "+strings.Repeat("y", 121)+"  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidMovie)
}

func TestUpdateFavoriteMovie_BoundaryLengths(t *testing.T) {
	users := &mockUserRepository{
		UpdateFavoriteMovieFunc: func(ctx context.Context, id uuid.UUID, movie string) error {
			return nil
		},
	}
	svc := NewUserService(users, &mockFactRepository{}, zap.NewNop())

	saved, err := svc.UpdateFavoriteMovie(context.Background(), uuid.New(), "It")
	require.NoError(t, err)
	assert.Equal(t, "It", saved)

	max := strings.Repeat("z", 120)
	saved, err = svc.UpdateFavoriteMovie(context.Background(), uuid.New(), max)
	require.NoError(t, err)
	assert.Equal(t, max, saved)
}

func TestUpdateFavoriteMovie_UserNotFound(t *testing.T) {
	users := &mockUserRepository{
		UpdateFavoriteMovieFunc: func(ctx context.Context, id uuid.UUID, movie string) error {
			return apperrors.ErrNotFound
		},
	}

	_, err := NewUserService(users, &mockFactRepository{}, zap.NewNop()).
		UpdateFavoriteMovie(context.Background(), uuid.New(), "Inception")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
