package journal

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("journal entry not found")

// Entry is a dated journal note written by a team member.
type Entry struct {
	ID        uuid.UUID
	Title     string
	Body      string
	Mood      string
	Author    string
	EntryDate time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}
