package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/schedule"
)

type taskResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Notes       string              `json:"notes,omitempty"`
	Status      schedule.TaskStatus `json:"status"`
	Priority    schedule.Priority   `json:"priority"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	ClientID    *uuid.UUID          `json:"client_id,omitempty"`
	AssignedTo  string              `json:"assigned_to,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at,omitempty"`
}

func toTaskResponse(t *schedule.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Notes:       t.Notes,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		ClientID:    t.ClientID,
		AssignedTo:  t.AssignedTo,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponseList(tasks []*schedule.Task) []taskResponse {
	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toTaskResponse(t)
	}

	return resp
}

type eventResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      time.Time  `json:"ends_at"`
	Location    string     `json:"location,omitempty"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toEventResponse(e *schedule.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Location:    e.Location,
		ClientID:    e.ClientID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEventResponseList(events []*schedule.Event) []eventResponse {
	resp := make([]eventResponse, len(events))
	for i, e := range events {
		resp[i] = toEventResponse(e)
	}

	return resp
}
