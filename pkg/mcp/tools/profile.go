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
	mcpserver "github.com/Sriyakreddy/movie-memory/pkg/mcp"
)

type profileResult struct {
	ID            string      `json:"id"`
	Name          *string     `json:"name"`
	Email         string      `json:"email"`
	FavoriteMovie *string     `json:"favorite_movie"`
	RecentFacts   []factEntry `json:"recent_facts"`
}

type factEntry struct {
	Movie     string `json:"movie"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// registerGetProfileTool adds the get_profile tool.
func registerGetProfileTool(s *mcpserver.Server, deps *Deps) {
	tool := mcp.NewTool(
		"get_profile",
		mcp.WithDescription(
			"Returns the authenticated user's profile: name, email, favorite movie, "+
				"and the facts most recently generated for them.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.RegisterTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := auth.UserIDFromContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("authentication required")
		}

		profile, err := deps.UserService.GetProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return NewErrorResult("user_not_found", "User not found"), nil
			}
			deps.Logger.Error("get_profile tool failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}

		entries := make([]factEntry, 0, len(profile.RecentFacts))
		for _, f := range profile.RecentFacts {
			entries = append(entries, factEntry{
				Movie:     f.Movie,
				Text:      f.Text,
				CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
			})
		}

		result, err := json.Marshal(profileResult{
			ID:            profile.User.ID.String(),
			Name:          profile.User.Name,
			Email:         profile.User.Email,
			FavoriteMovie: profile.User.FavoriteMovie,
			RecentFacts:   entries,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile result: %w", err)
		}
		return mcp.NewToolResultText(string(result)), nil
	})
}
