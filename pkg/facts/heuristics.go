// Package facts implements the movie fact generation pipeline: specificity
// heuristics over candidate text, and the retry/fallback generator that
// drives the text-generation backend.
package facts

import (
	"regexp"
	"strings"
)

// Normalize trims whitespace and lowercases. Used exclusively for equality
// comparisons (dedup, rejection sets), never for display.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// movieTokenPattern splits a title into alphanumeric runs.
var movieTokenPattern = regexp.MustCompile(`[^a-z0-9]+`)

// minMovieTokenLength filters out short stop-word-ish tokens ("the", "of",
// "it") that would match almost any text.
const minMovieTokenLength = 4

// MatchesMovie reports whether the fact text plausibly references the movie:
// either the full normalized title appears as a substring, or at least one
// title token of length >= 4 does. Titles that yield no such token (e.g. "It")
// can never match; callers must fall back to prefixing the title themselves.
func MatchesMovie(fact, movie string) bool {
	normalizedFact := strings.ToLower(fact)
	normalizedMovie := Normalize(movie)

	if strings.Contains(normalizedFact, normalizedMovie) {
		return true
	}

	for _, token := range movieTokenPattern.Split(normalizedMovie, -1) {
		if len(token) < minMovieTokenLength {
			continue
		}
		if strings.Contains(normalizedFact, token) {
			return true
		}
	}
	return false
}

// concreteDetailPatterns are necessary-but-not-sufficient specificity
// signals: a year, a dollar amount, a runtime, a named award, or a
// production-credit phrase.
var concreteDetailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(18|19|20)\d{2}\b`),
	regexp.MustCompile(`\$\s?\d`),
	regexp.MustCompile(`(?i)\b\d+\s?(minutes?|hours?)\b`),
	regexp.MustCompile(`(?i)\b(oscar|academy awards?|golden globe|bafta|cannes|grammy)\b`),
	regexp.MustCompile(`(?i)\b(directed by|starring|filmed in|based on)\b`),
}

// HasConcreteDetail reports whether the fact contains at least one concrete
// detail signal.
func HasConcreteDetail(fact string) bool {
	for _, pattern := range concreteDetailPatterns {
		if pattern.MatchString(fact) {
			return true
		}
	}
	return false
}

// genericPhrasePatterns mark vague filler text that could describe almost any
// movie. A single match rejects the fact regardless of concrete details.
var genericPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)fan community`),
	regexp.MustCompile(`(?i)often cited`),
	regexp.MustCompile(`(?i)pop culture memes?`),
	regexp.MustCompile(`(?i)first-time viewers?`),
	regexp.MustCompile(`(?i)most searched`),
	regexp.MustCompile(`(?i)debat(es|ing) about`),
	regexp.MustCompile(`(?i)keeps uncovering`),
	regexp.MustCompile(`(?i)widely discussed`),
}

// IsGenericPhrase reports whether the fact matches any vague-phrasing pattern.
func IsGenericPhrase(fact string) bool {
	for _, pattern := range genericPhrasePatterns {
		if pattern.MatchString(fact) {
			return true
		}
	}
	return false
}

// Accepted applies the acceptance rule: a candidate passes only when it
// carries a concrete detail and contains no generic phrasing.
func Accepted(fact string) bool {
	return HasConcreteDetail(fact) && !IsGenericPhrase(fact)
}
