package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Sriyakreddy/movie-memory/pkg/facts"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
)

// mockUserRepository is a function-field mock for UserRepository.
type mockUserRepository struct {
	GetByIDFunc             func(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetByEmailFunc          func(ctx context.Context, email string) (*models.User, error)
	UpdateFavoriteMovieFunc func(ctx context.Context, userID uuid.UUID, movie string) error
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return m.GetByIDFunc(ctx, userID)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockUserRepository) UpdateFavoriteMovie(ctx context.Context, userID uuid.UUID, movie string) error {
	return m.UpdateFavoriteMovieFunc(ctx, userID, movie)
}

// mockFactRepository is a function-field mock for FactRepository.
type mockFactRepository struct {
	CreateFunc    func(ctx context.Context, userID uuid.UUID, movie, text string) (*models.Fact, error)
	GetLatestFunc func(ctx context.Context, userID uuid.UUID, movie string) (*models.Fact, error)
	GetRecentFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Fact, error)
}

func (m *mockFactRepository) Create(ctx context.Context, userID uuid.UUID, movie, text string) (*models.Fact, error) {
	return m.CreateFunc(ctx, userID, movie, text)
}

func (m *mockFactRepository) GetLatest(ctx context.Context, userID uuid.UUID, movie string) (*models.Fact, error) {
	return m.GetLatestFunc(ctx, userID, movie)
}

func (m *mockFactRepository) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Fact, error) {
	return m.GetRecentFunc(ctx, userID, limit)
}

// mockGenerator is a function-field mock for FactGenerator.
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, movie string, gc facts.Context) (string, error)
	Calls        int
}

func (m *mockGenerator) Generate(ctx context.Context, movie string, gc facts.Context) (string, error) {
	m.Calls++
	return m.GenerateFunc(ctx, movie, gc)
}
