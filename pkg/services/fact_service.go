package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/apperrors"
	"github.com/Sriyakreddy/movie-memory/pkg/facts"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
	"github.com/Sriyakreddy/movie-memory/pkg/repositories"
)

// Context assembly limits: how much history feeds one generation request.
const (
	recentContextLimit = 20
	maxPriorFacts      = 8
	maxRecentMovies    = 6
)

// FactGenerator is the slice of the generator the policy needs.
// Satisfied by *facts.Generator; mocked in tests.
type FactGenerator interface {
	Generate(ctx context.Context, movie string, gc facts.Context) (string, error)
}

// FactService decides between serving the cached latest fact and invoking
// generation, and assembles the generation context from stored history.
type FactService interface {
	// GetFact returns a fact for the user's favorite movie. cached reports
	// whether the fact was served from storage rather than freshly generated.
	GetFact(ctx context.Context, userID uuid.UUID, forceNew bool) (fact *models.Fact, cached bool, err error)
}

// factService implements FactService.
type factService struct {
	users     repositories.UserRepository
	factsRepo repositories.FactRepository
	generator FactGenerator
	cacheTTL  time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// NewFactService creates the fact cache/dedup policy service.
func NewFactService(
	users repositories.UserRepository,
	factsRepo repositories.FactRepository,
	generator FactGenerator,
	cacheTTL time.Duration,
	logger *zap.Logger,
) FactService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &factService{
		users:     users,
		factsRepo: factsRepo,
		generator: generator,
		cacheTTL:  cacheTTL,
		now:       time.Now,
		logger:    logger.Named("facts"),
	}
}

// GetFact implements the single-slot freshness cache and the degraded
// fallback path.
//
// The read-then-write sequence below is deliberately unguarded: two
// concurrent cache misses for the same (user, movie) may both generate and
// both persist. Acceptable at this scale; serializing it would change
// observable behavior.
func (s *factService) GetFact(ctx context.Context, userID uuid.UUID, forceNew bool) (*models.Fact, bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if !user.HasFavoriteMovie() {
		return nil, false, apperrors.ErrNoFavoriteMovie
	}
	movie := *user.FavoriteMovie

	latest, err := s.factsRepo.GetLatest(ctx, userID, movie)
	if err != nil {
		return nil, false, err
	}

	if !forceNew && latest != nil && latest.Age(s.now()) < s.cacheTTL {
		return latest, true, nil
	}

	gc, err := s.buildContext(ctx, userID, movie)
	if err != nil {
		return nil, false, err
	}

	text, err := s.generator.Generate(ctx, movie, gc)
	if err != nil {
		// Degraded service: when every attempt was exhausted, a stored
		// fact of any age beats a hard error. The freshness window
		// intentionally does not apply here. Fatal errors (missing or
		// rejected credentials) propagate so operators see them.
		var genErr *facts.GenerationError
		if errors.As(err, &genErr) && latest != nil {
			s.logger.Warn("generation failed, serving stored fact",
				zap.String("movie", movie),
				zap.Error(err))
			return latest, true, nil
		}
		return nil, false, err
	}

	created, err := s.factsRepo.Create(ctx, userID, movie, text)
	if err != nil {
		return nil, false, fmt.Errorf("failed to persist fact: %w", err)
	}

	return created, false, nil
}

// buildContext collects the user's recent fact history and splits it into
// prior facts for the favorite movie and distinct other movie titles.
func (s *factService) buildContext(ctx context.Context, userID uuid.UUID, movie string) (facts.Context, error) {
	recent, err := s.factsRepo.GetRecent(ctx, userID, recentContextLimit)
	if err != nil {
		return facts.Context{}, err
	}

	var priorFacts []string
	var recentMovies []string
	seenMovies := make(map[string]struct{})

	for _, fact := range recent {
		if fact.Movie == movie {
			if len(priorFacts) < maxPriorFacts {
				priorFacts = append(priorFacts, fact.Text)
			}
			continue
		}
		if _, ok := seenMovies[fact.Movie]; ok {
			continue
		}
		seenMovies[fact.Movie] = struct{}{}
		if len(recentMovies) < maxRecentMovies {
			recentMovies = append(recentMovies, fact.Movie)
		}
	}

	return facts.Context{PriorFacts: priorFacts, RecentMovies: recentMovies}, nil
}

// Ensure factService implements FactService at compile time.
var _ FactService = (*factService)(nil)
