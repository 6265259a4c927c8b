package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/journal"
)

type entryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title,omitempty"`
	Body      string     `json:"body"`
	Mood      string     `json:"mood,omitempty"`
	Author    string     `json:"author,omitempty"`
	EntryDate time.Time  `json:"entry_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(e *journal.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Title:     e.Title,
		Body:      e.Body,
		Mood:      e.Mood,
		Author:    e.Author,
		EntryDate: e.EntryDate,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toResponseList(entries []*journal.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}
