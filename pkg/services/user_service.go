package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/apperrors"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
	"github.com/Sriyakreddy/movie-memory/pkg/repositories"
)

// recentFactsLimit caps the fact history returned with a profile.
const recentFactsLimit = 10

// Profile bundles a user with their recent fact history.
type Profile struct {
	User        *models.User
	RecentFacts []*models.Fact
}

// UserService exposes profile reads and favorite-movie updates.
type UserService interface {
	// GetProfile returns the user and their 10 most recent facts.
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// UpdateFavoriteMovie normalizes, validates, and persists the favorite
	// movie, returning the stored (normalized) value.
	UpdateFavoriteMovie(ctx context.Context, userID uuid.UUID, movie string) (string, error)
}

// userService implements UserService.
type userService struct {
	users  repositories.UserRepository
	facts  repositories.FactRepository
	logger *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repositories.UserRepository, facts repositories.FactRepository, logger *zap.Logger) UserService {
	return &userService{
		users:  users,
		facts:  facts,
		logger: logger.Named("users"),
	}
}

// GetProfile returns the user and their recent facts, newest first.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentFacts, err := s.facts.GetRecent(ctx, userID, recentFactsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent facts: %w", err)
	}

	return &Profile{User: user, RecentFacts: recentFacts}, nil
}

// UpdateFavoriteMovie validates and persists a new favorite movie.
// The returned value is the server-normalized form, which may differ from
// what the client submitted.
func (s *userService) UpdateFavoriteMovie(ctx context.Context, userID uuid.UUID, movie string) (string, error) {
	normalized := models.NormalizeMovieInput(movie)
	if msg := models.ValidateMovieInput(normalized); msg != "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidMovie, msg)
	}

	if err := s.users.UpdateFavoriteMovie(ctx, userID, normalized); err != nil {
		return "", err
	}

	s.logger.Info("favorite movie updated", zap.String("user_id", userID.String()))
	return normalized, nil
}

// Ensure userService implements UserService at compile time.
var _ UserService = (*userService)(nil)
