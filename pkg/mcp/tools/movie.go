package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/apperrors"
	"github.com/Sriyakreddy/movie-memory/pkg/auth"
	mcpserver "github.com/Sriyakreddy/movie-memory/pkg/mcp"
	"github.com/Sriyakreddy/movie-memory/pkg/models"
)

type setMovieResult struct {
	FavoriteMovie string `json:"favorite_movie"`
}

// registerSetFavoriteMovieTool adds the set_favorite_movie tool.
// The stored value is returned so the agent sees the normalized form.
func registerSetFavoriteMovieTool(s *mcpserver.Server, deps *Deps) {
	tool := mcp.NewTool(
		"set_favorite_movie",
		mcp.WithDescription(
			"Sets the user's favorite movie. The title is trimmed and must be "+
				"between 2 and 120 characters. Returns the stored value.",
		),
		mcp.WithString(
			"movie",
			mcp.Required(),
			mcp.Description("The movie title to store as the user's favorite"),
		),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.RegisterTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := auth.UserIDFromContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("authentication required")
		}

		movie, err := req.RequireString("movie")
		if err != nil {
			return NewErrorResult("missing_movie", "movie parameter is required"), nil
		}

		saved, err := deps.UserService.UpdateFavoriteMovie(ctx, userID, movie)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidMovie):
				return NewErrorResult("invalid_movie",
					models.ValidateMovieInput(models.NormalizeMovieInput(movie))), nil
			case errors.Is(err, apperrors.ErrNotFound):
				return NewErrorResult("user_not_found", "User not found"), nil
			}
			deps.Logger.Error("set_favorite_movie tool failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return nil, fmt.Errorf("failed to update favorite movie: %w", err)
		}

		result, err := json.Marshal(setMovieResult{FavoriteMovie: saved})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(result)), nil
	})
}
