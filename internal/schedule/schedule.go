package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrEventNotFound = errors.New("event not found")
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a to-do item, optionally linked to a client.
type Task struct {
	ID          uuid.UUID
	Title       string
	Notes       string
	Status      TaskStatus
	Priority    Priority
	DueDate     *time.Time
	ClientID    *uuid.UUID
	AssignedTo  string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Overdue reports whether the task is past due and not done.
func (t *Task) Overdue(now time.Time) bool {
	return t.Status != TaskStatusDone && t.DueDate != nil && t.DueDate.Before(now)
}

// Event is a calendar entry, optionally linked to a client.
type Event struct {
	ID          uuid.UUID
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	Location    string
	ClientID    *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
