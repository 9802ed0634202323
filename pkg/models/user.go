package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Favorite movie length bounds, applied after trimming.
const (
	MinMovieLength = 2
	MaxMovieLength = 120
)

// User is an account provisioned by the external identity provider.
// Only the favorite movie is mutable through this service.
type User struct {
	ID            uuid.UUID
	Email         string
	Name          *string
	Image         *string
	FavoriteMovie *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasFavoriteMovie reports whether the user has a non-empty favorite movie.
func (u *User) HasFavoriteMovie() bool {
	return u.FavoriteMovie != nil && *u.FavoriteMovie != ""
}

// NormalizeMovieInput trims surrounding whitespace from a submitted title.
func NormalizeMovieInput(movie string) string {
	return strings.TrimSpace(movie)
}

// ValidateMovieInput checks the length bounds on an already-normalized title.
// Bounds count characters, not bytes, so non-ASCII titles are not penalized.
// Returns a user-facing message naming the violated constraint, or "" if valid.
func ValidateMovieInput(movie string) string {
	if n := utf8.RuneCountInString(movie); n < MinMovieLength || n > MaxMovieLength {
		return fmt.Sprintf("Favorite movie must be between %d and %d characters", MinMovieLength, MaxMovieLength)
	}
	return ""
}
