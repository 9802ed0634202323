// Package tools provides the MCP tool implementations for movie-memory.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/apperrors"
	"github.com/Sriyakreddy/movie-memory/pkg/auth"
	"github.com/Sriyakreddy/movie-memory/pkg/facts"
	mcpserver "github.com/Sriyakreddy/movie-memory/pkg/mcp"
	"github.com/Sriyakreddy/movie-memory/pkg/services"
)

// Deps contains the services the movie-memory tools call into.
type Deps struct {
	FactService services.FactService
	UserService services.UserService
	Logger      *zap.Logger
}

// RegisterTools registers every movie-memory tool on the MCP server.
func RegisterTools(s *mcpserver.Server, deps *Deps) {
	registerGetMovieFactTool(s, deps)
	registerGetProfileTool(s, deps)
	registerSetFavoriteMovieTool(s, deps)
}

type factResult struct {
	ID        string `json:"id"`
	Movie     string `json:"movie"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	Cached    bool   `json:"cached"`
}

// registerGetMovieFactTool adds the get_movie_fact tool.
// It mirrors GET /api/fact: a fresh cached fact is reused unless
// force_new is set.
func registerGetMovieFactTool(s *mcpserver.Server, deps *Deps) {
	tool := mcp.NewTool(
		"get_movie_fact",
		mcp.WithDescription(
			"Returns a one-sentence verified fact about the user's favorite movie. "+
				"Recently generated facts are served from cache; set force_new to skip the cache.",
		),
		mcp.WithBoolean(
			"force_new",
			mcp.Description("If true, generate a new fact even when a recent one exists (default: false)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	s.RegisterTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := auth.UserIDFromContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("authentication required")
		}

		forceNew, _ := getOptionalBool(req, "force_new")

		fact, cached, err := deps.FactService.GetFact(ctx, userID, forceNew)
		if err != nil {
			var genErr *facts.GenerationError
			switch {
			case errors.Is(err, apperrors.ErrNoFavoriteMovie):
				return NewErrorResult("no_favorite_movie", "Set your favorite movie first"), nil
			case errors.Is(err, apperrors.ErrNotFound):
				return NewErrorResult("user_not_found", "User not found"), nil
			case errors.As(err, &genErr):
				return NewErrorResult("generation_failed", genErr.Error()), nil
			}
			deps.Logger.Error("get_movie_fact tool failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return nil, fmt.Errorf("failed to get fact: %w", err)
		}

		result, err := json.Marshal(factResult{
			ID:        fact.ID.String(),
			Movie:     fact.Movie,
			Text:      fact.Text,
			CreatedAt: fact.CreatedAt.UTC().Format(time.RFC3339),
			Cached:    cached,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal fact result: %w", err)
		}
		return mcp.NewToolResultText(string(result)), nil
	})
}

// getOptionalBool extracts an optional boolean parameter from the request.
func getOptionalBool(req mcp.CallToolRequest, key string) (bool, bool) {
	if args, ok := req.Params.Arguments.(map[string]any); ok {
		if val, ok := args[key].(bool); ok {
			return val, true
		}
	}
	return false, false
}
