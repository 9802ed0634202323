// Package movieedit models the favorite-movie edit lifecycle as a pure
// value-transition state machine: viewing, editing, and saving (optimistic
// update with rollback). It holds no runtime state of its own and touches no
// transport or rendering concern, so consumers can drive it from any UI.
package movieedit

import "strings"

// State is one snapshot of the edit lifecycle.
//
// Invariants: when Editing is false and Saving is false, Draft equals Movie.
// Editing and Saving are never both true.
type State struct {
	Movie   string // committed value, possibly optimistic while saving
	Draft   string // uncommitted input
	Editing bool
	Saving  bool
	Message string // last status or error; "" when none
}

// New returns the initial state for a committed movie value.
func New(movie string) State {
	return State{
		Movie: movie,
		Draft: movie,
	}
}

// StartEdit opens the editor. The draft is left as-is and any prior message
// is cleared.
func StartEdit(s State) State {
	s.Editing = true
	s.Message = ""
	return s
}

// SetDraft replaces the uncommitted input.
func SetDraft(s State, draft string) State {
	s.Draft = draft
	return s
}

// Cancel closes the editor and resets the draft to the committed value.
func Cancel(s State) State {
	s.Draft = s.Movie
	s.Editing = false
	s.Message = ""
	return s
}

// SaveResult carries what the caller needs to issue the save call and to
// roll back if it fails.
type SaveResult struct {
	State         State
	PreviousMovie string // committed value before the optimistic update
	NextMovie     string // trimmed draft now displayed optimistically
}

// OptimisticSave commits the trimmed draft immediately and enters the saving
// state. The caller sends NextMovie to the server and follows up with
// SaveSuccess or SaveError.
func OptimisticSave(s State) SaveResult {
	next := strings.TrimSpace(s.Draft)
	result := SaveResult{
		PreviousMovie: s.Movie,
		NextMovie:     next,
	}
	s.Movie = next
	s.Editing = false
	s.Saving = true
	s.Message = ""
	result.State = s
	return result
}

// SaveSuccess records the server-confirmed value, which may differ from the
// optimistic one after server-side normalization.
func SaveSuccess(s State, savedMovie string) State {
	s.Movie = savedMovie
	s.Draft = savedMovie
	s.Saving = false
	s.Message = "Saved"
	return s
}

// SaveError rolls both the committed value and the draft back to the
// pre-save value and reopens editing so the user can retry. The unsaved
// draft is lost; consistency wins over preservation.
func SaveError(s State, previousMovie, message string) State {
	s.Movie = previousMovie
	s.Draft = previousMovie
	s.Editing = true
	s.Saving = false
	s.Message = message
	return s
}
