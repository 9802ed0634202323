package models

import (
	"time"

	"github.com/google/uuid"
)

// FactMaxLength bounds generated fact text.
const FactMaxLength = 500

// Fact is one generated statement about a movie, scoped to the user it was
// generated for. Facts are immutable once created.
type Fact struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Movie     string
	Text      string
	CreatedAt time.Time
}

// Age returns how long ago the fact was created, relative to now.
func (f *Fact) Age(now time.Time) time.Duration {
	return now.Sub(f.CreatedAt)
}
