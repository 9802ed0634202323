package movieedit

import "testing"

func TestNew(t *testing.T) {
	s := New("Inception")
	if s.Movie != "Inception" || s.Draft != "Inception" {
		t.Errorf("draft must mirror the committed value, got %+v", s)
	}
	if s.Editing || s.Saving || s.Message != "" {
		t.Errorf("initial state must be quiescent, got %+v", s)
	}
}

func TestStartEdit_ClearsMessage(t *testing.T) {
	s := New("Inception")
	s.Message = "Saved"

	s = StartEdit(s)
	if !s.Editing {
		t.Error("expected editing state")
	}
	if s.Message != "" {
		t.Error("stale message must clear when editing starts")
	}
}

func TestCancel_RestoresDraft(t *testing.T) {
	s := StartEdit(New("Inception"))
	s = SetDraft(s, "Interstellar")

	s = Cancel(s)
	if s.Editing {
		t.Error("cancel must close the editor")
	}
	if s.Draft != "Inception" {
		t.Errorf("cancel must restore the draft to the committed value, got %q", s.Draft)
	}
	if s.Movie != "Inception" {
		t.Errorf("cancel must not touch the committed value, got %q", s.Movie)
	}
}

func TestOptimisticSave_CommitsTrimmedDraft(t *testing.T) {
	s := StartEdit(New("Inception"))
	s = SetDraft(s, "  Interstellar  ")

	result := OptimisticSave(s)
	if result.PreviousMovie != "Inception" {
		t.Errorf("previous value must be retained for rollback, got %q", result.PreviousMovie)
	}
	if result.NextMovie != "Interstellar" {
		t.Errorf("draft must be trimmed before committing, got %q", result.NextMovie)
	}
	if result.State.Movie != "Interstellar" {
		t.Errorf("optimistic commit must show immediately, got %q", result.State.Movie)
	}
	if !result.State.Saving || result.State.Editing {
		t.Errorf("save must close the editor and enter saving, got %+v", result.State)
	}
}

func TestSaveSuccess_AdoptsServerValue(t *testing.T) {
	s := StartEdit(New("Inception"))
	s = SetDraft(s, " Interstellar ")
	result := OptimisticSave(s)

	// Server normalization may differ from the client's trim.
	s = SaveSuccess(result.State, "Interstellar")
	if s.Movie != "Interstellar" || s.Draft != "Interstellar" {
		t.Errorf("confirmed value must replace both movie and draft, got %+v", s)
	}
	if s.Saving {
		t.Error("saving must end on success")
	}
	if s.Message != "Saved" {
		t.Errorf("expected Saved message, got %q", s.Message)
	}
}

func TestSaveError_RollsBackAndReopensEditor(t *testing.T) {
	s := StartEdit(New("Inception"))
	s = SetDraft(s, "Interstellar")
	result := OptimisticSave(s)

	s = SaveError(result.State, result.PreviousMovie, "Favorite movie must be between 2 and 120 characters")
	if s.Movie != "Inception" {
		t.Errorf("rollback must restore the previous value, got %q", s.Movie)
	}
	if s.Draft != "Inception" {
		t.Errorf("rollback resets the draft too, got %q", s.Draft)
	}
	if !s.Editing || s.Saving {
		t.Errorf("failure must reopen the editor, got %+v", s)
	}
	if s.Message == "" {
		t.Error("failure must surface the error message")
	}
}
