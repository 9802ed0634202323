package models

import (
	"strings"
	"testing"
)

func TestNormalizeMovieInput(t *testing.T) {
	if got := NormalizeMovieInput("  Inception  "); got != "Inception" {
		t.Errorf("expected trimmed title, got %q", got)
	}
}

func TestValidateMovieInput(t *testing.T) {
	tests := []struct {
		name      string
		movie     string
		wantValid bool
	}{
		{"valid title", "Inception", true},
		{"minimum length", "It", true},
		{"too short", "X", false},
		{"empty", "", false},
		{"at limit", strings.Repeat("a", 120), true},
		{"over limit", strings.Repeat("a", 121), false},
		// 70 characters, 140 bytes; bounds count characters.
		{"non-ascii within limit", strings.Repeat("ф", 70), true},
		{"non-ascii over limit", strings.Repeat("ф", 121), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateMovieInput(tt.movie)
			if tt.wantValid && msg != "" {
				t.Errorf("expected valid, got %q", msg)
			}
			if !tt.wantValid && msg == "" {
				t.Error("expected a validation message")
			}
		})
	}
}

func TestHasFavoriteMovie(t *testing.T) {
	empty := ""
	movie := "Inception"

	if (&User{}).HasFavoriteMovie() {
		t.Error("nil favorite movie must report false")
	}
	if (&User{FavoriteMovie: &empty}).HasFavoriteMovie() {
		t.Error("empty favorite movie must report false")
	}
	if !(&User{FavoriteMovie: &movie}).HasFavoriteMovie() {
		t.Error("set favorite movie must report true")
	}
}
