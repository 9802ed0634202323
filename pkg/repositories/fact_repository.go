package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Sriyakreddy/movie-memory/pkg/database"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
)

// FactRepository defines the interface for fact data access.
// Facts are append-only: created once, read many times, never updated.
type FactRepository interface {
	// Create persists a new fact. The server assigns id and timestamp.
	Create(ctx context.Context, userID uuid.UUID, movie, text string) (*models.Fact, error)

	// GetLatest returns the most recently created fact for (user, movie),
	// or nil if none exists.
	GetLatest(ctx context.Context, userID uuid.UUID, movie string) (*models.Fact, error)

	// GetRecent returns up to limit facts for the user across all movies,
	// newest first.
	GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Fact, error)
}

// factRepository implements FactRepository using PostgreSQL.
type factRepository struct {
	db *database.DB
}

// NewFactRepository creates a new fact repository.
func NewFactRepository(db *database.DB) FactRepository {
	return &factRepository{db: db}
}

// Create persists a new fact and returns it with the assigned id and timestamp.
func (r *factRepository) Create(ctx context.Context, userID uuid.UUID, movie, text string) (*models.Fact, error) {
	query := `
		INSERT INTO facts (user_id, movie, text)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, movie, text, created_at`

	var fact models.Fact
	err := r.db.QueryRow(ctx, query, userID, movie, text).Scan(
		&fact.ID,
		&fact.UserID,
		&fact.Movie,
		&fact.Text,
		&fact.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fact: %w", err)
	}

	return &fact, nil
}

// GetLatest returns the newest fact for (user, movie), or nil if none exists.
func (r *factRepository) GetLatest(ctx context.Context, userID uuid.UUID, movie string) (*models.Fact, error) {
	query := `
		SELECT id, user_id, movie, text, created_at
		FROM facts
		WHERE user_id = $1 AND movie = $2
		ORDER BY created_at DESC
		LIMIT 1`

	var fact models.Fact
	err := r.db.QueryRow(ctx, query, userID, movie).Scan(
		&fact.ID,
		&fact.UserID,
		&fact.Movie,
		&fact.Text,
		&fact.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest fact: %w", err)
	}

	return &fact, nil
}

// GetRecent returns up to limit facts for the user, newest first.
func (r *factRepository) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Fact, error) {
	query := `
		SELECT id, user_id, movie, text, created_at
		FROM facts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent facts: %w", err)
	}
	defer rows.Close()

	var facts []*models.Fact
	for rows.Next() {
		var fact models.Fact
		err := rows.Scan(
			&fact.ID,
			&fact.UserID,
			&fact.Movie,
			&fact.Text,
			&fact.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fact: %w", err)
		}
		facts = append(facts, &fact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating facts: %w", err)
	}

	return facts, nil
}

// Ensure factRepository implements FactRepository at compile time.
var _ FactRepository = (*factRepository)(nil)
