// Package prompts builds instruction blocks for the text-generation backend.
package prompts

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FactSentinel is the exact reply the model must give when it cannot verify
// a fact. The generator compares against it byte-for-byte.
const FactSentinel = "I can't verify a specific fact for this movie."

// SystemMessage steers the model toward terse, verifiable output.
const SystemMessage = "You are a precise movie researcher. Return only one sentence, keep it factual, and never invent uncertain details."

// Sampling parameters for fact generation: low temperature, short output.
const (
	Temperature = 0.2
	MaxTokens   = 120
)

const (
	maxPriorFacts   = 8
	maxRecentMovies = 6
	maxItemLength   = 180
)

// normalizeItems trims, drops empties, truncates to 180 characters, dedupes
// by exact string, and caps the list. First-seen order is preserved.
// Truncation counts runes so a multi-byte character is never split.
func normalizeItems(items []string, max int) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if utf8.RuneCountInString(item) > maxItemLength {
			item = string([]rune(item)[:maxItemLength])
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) == max {
			break
		}
	}
	return out
}

// excludeTitle drops the target movie from a title list, comparing
// case-insensitively after trimming.
func excludeTitle(titles []string, movie string) []string {
	target := strings.ToLower(strings.TrimSpace(movie))
	var out []string
	for _, title := range titles {
		if strings.ToLower(strings.TrimSpace(title)) == target {
			continue
		}
		out = append(out, title)
	}
	return out
}

// BuildMovieFactPrompt assembles the deterministic instruction block for one
// fact request. Prior facts constrain repetition; recent movies are context
// only and must not leak into the generated fact.
func BuildMovieFactPrompt(movie string, priorFacts, recentMovies []string) string {
	priors := normalizeItems(priorFacts, maxPriorFacts)
	recents := normalizeItems(excludeTitle(recentMovies, movie), maxRecentMovies)

	priorFactsBlock := "None"
	if len(priors) > 0 {
		var lines []string
		for i, fact := range priors {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, fact))
		}
		priorFactsBlock = strings.Join(lines, "\n")
	}

	recentMoviesBlock := "None"
	if len(recents) > 0 {
		recentMoviesBlock = strings.Join(recents, ", ")
	}

	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("Target movie: %s\n", movie))
	prompt.WriteString("Task: Return exactly one accurate, movie-specific fact as a single sentence in plain text.\n")
	prompt.WriteString("Hard rules:\n")
	prompt.WriteString("1) Include at least one concrete detail (release year, cast, director, award, budget, box office, runtime, adaptation source, production detail).\n")
	prompt.WriteString("2) Do not use generic statements that could apply to many movies.\n")
	prompt.WriteString("3) Do not repeat facts listed in Previous facts.\n")
	prompt.WriteString(fmt.Sprintf("4) If unsure, reply exactly: %s\n", FactSentinel))
	prompt.WriteString("\n")
	prompt.WriteString("Previous facts:\n")
	prompt.WriteString(priorFactsBlock)
	prompt.WriteString("\n\n")
	prompt.WriteString("Recent movies viewed by the same user (for context only, do not mix facts across movies):\n")
	prompt.WriteString(recentMoviesBlock)

	return prompt.String()
}
