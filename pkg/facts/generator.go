package facts

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/llm"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
	"github.com/Sriyakreddy/movie-memory/pkg/prompts"
)

// GenerationError indicates every model and attempt was exhausted without an
// acceptable fact and no fallback candidate was recorded.
type GenerationError struct {
	Movie  string
	Reason string
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("could not generate a specific fact for %q, please try again", e.Movie)
}

// Context carries the per-request generation inputs. Prior facts constrain
// repetition for the target movie; recent movies are prompt context only.
type Context struct {
	PriorFacts   []string
	RecentMovies []string
}

// GeneratorConfig tunes the retry matrix and per-call timeout.
type GeneratorConfig struct {
	// Models is the quality/cost-ordered model list. The first model is
	// exhausted before the next is tried.
	Models []string

	// AttemptsPerModel is how many times each model is tried.
	AttemptsPerModel int

	// RequestTimeout bounds a single backend call. Expiry counts as a
	// retryable failure, same as a non-success response.
	RequestTimeout time.Duration
}

// DefaultGeneratorConfig mirrors the production retry matrix: two models,
// two attempts each, 20s per call.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Models:           []string{"gpt-4o-mini", "gpt-4.1-mini"},
		AttemptsPerModel: 2,
		RequestTimeout:   20 * time.Second,
	}
}

// Generator produces one movie fact per call, retrying across an ordered
// model/attempt matrix and degrading to the first rejected candidate when no
// attempt passes the acceptance rule.
type Generator struct {
	client llm.Client
	cfg    GeneratorConfig
	logger *zap.Logger
}

// NewGenerator creates a fact generator over the given backend client.
func NewGenerator(client llm.Client, cfg GeneratorConfig, logger *zap.Logger) *Generator {
	if len(cfg.Models) == 0 {
		cfg.Models = DefaultGeneratorConfig().Models
	}
	if cfg.AttemptsPerModel <= 0 {
		cfg.AttemptsPerModel = 2
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 20 * time.Second
	}
	return &Generator{
		client: client,
		cfg:    cfg,
		logger: logger.Named("facts"),
	}
}

// extractFact trims the raw completion, strips one layer of wrapping quotes,
// and caps the length. The cap counts runes so a multi-byte character is
// never split.
func extractFact(content string) string {
	fact := strings.TrimSpace(content)
	fact = strings.TrimPrefix(fact, `"`)
	fact = strings.TrimSuffix(fact, `"`)
	if utf8.RuneCountInString(fact) > models.FactMaxLength {
		fact = string([]rune(fact)[:models.FactMaxLength])
	}
	return fact
}

// Generate returns one fact about the movie, or an error when generation is
// impossible. The first candidate passing the acceptance rule wins; attempts
// are strictly sequential. Candidates whose normalized text matches a prior
// fact are never returned, not even as the fallback. A rejected-but-novel
// candidate is retained (first one only) and served when every attempt fails,
// preferring degraded output over a hard error.
func (g *Generator) Generate(ctx context.Context, movie string, gc Context) (string, error) {
	prompt := prompts.BuildMovieFactPrompt(movie, gc.PriorFacts, gc.RecentMovies)

	rejected := make(map[string]struct{}, len(gc.PriorFacts))
	for _, prior := range gc.PriorFacts {
		rejected[Normalize(prior)] = struct{}{}
	}

	var lastError string
	var bestCandidate string

	for _, model := range g.cfg.Models {
		for attempt := 1; attempt <= g.cfg.AttemptsPerModel; attempt++ {
			callCtx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
			content, err := g.client.GenerateText(callCtx, model, prompts.SystemMessage, prompt, prompts.Temperature, prompts.MaxTokens)
			cancel()
			if err != nil {
				if llm.IsFatal(err) {
					return "", err
				}
				lastError = err.Error()
				continue
			}

			fact := extractFact(content)
			if fact == "" {
				lastError = "backend returned an empty fact"
				continue
			}

			if fact == prompts.FactSentinel {
				lastError = fmt.Sprintf("could not verify a specific fact for %q right now", movie)
				rejected[Normalize(fact)] = struct{}{}
				continue
			}

			// Guarantee the fact is attributable to its movie even when the
			// title is too short to tokenize.
			if !MatchesMovie(fact, movie) {
				fact = movie + ": " + fact
			}

			if _, dup := rejected[Normalize(fact)]; dup {
				lastError = "backend repeated a previously served fact"
				continue
			}

			if !Accepted(fact) {
				if bestCandidate == "" {
					bestCandidate = fact
				}
				lastError = "backend returned a generic or non-specific fact"
				continue
			}

			g.logger.Debug("fact accepted",
				zap.String("movie", movie),
				zap.String("model", model),
				zap.Int("attempt", attempt))
			return fact, nil
		}
	}

	if bestCandidate != "" {
		g.logger.Info("serving fallback candidate after exhausting attempts",
			zap.String("movie", movie),
			zap.String("last_error", lastError))
		return bestCandidate, nil
	}

	return "", &GenerationError{Movie: movie, Reason: lastError}
}
