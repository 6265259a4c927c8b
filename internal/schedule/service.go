package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, t *Task) error
	CompleteTask(ctx context.Context, id uuid.UUID, completedAt time.Time) error
	DeleteTask(ctx context.Context, id uuid.UUID) error

	CreateEvent(ctx context.Context, e *Event) error
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	UpdateEvent(ctx context.Context, e *Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type TaskFilter struct {
	Status     *TaskStatus
	AssignedTo *string
	ClientID   *uuid.UUID
	DueBefore  *time.Time
}

type EventFilter struct {
	From     *time.Time
	To       *time.Time
	ClientID *uuid.UUID
}

type CreateTaskParams struct {
	Title      string
	Notes      string
	Priority   Priority
	DueDate    *time.Time
	ClientID   *uuid.UUID
	AssignedTo string
}

func (s *Service) CreateTask(ctx context.Context, params CreateTaskParams) (*Task, error) {
	priority := params.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	t := &Task{
		Title:      params.Title,
		Notes:      params.Notes,
		Status:     TaskStatusTodo,
		Priority:   priority,
		DueDate:    params.DueDate,
		ClientID:   params.ClientID,
		AssignedTo: params.AssignedTo,
	}
	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.GetTask(ctx, id)
}

func (s *Service) ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	return s.repo.ListTasks(ctx, filter)
}

func (s *Service) UpdateTask(ctx context.Context, t *Task) error {
	return s.repo.UpdateTask(ctx, t)
}

// CompleteTask marks a task done and stamps its completion time.
func (s *Service) CompleteTask(ctx context.Context, id uuid.UUID) error {
	return s.repo.CompleteTask(ctx, id, time.Now())
}

func (s *Service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTask(ctx, id)
}

type CreateEventParams struct {
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	Location    string
	ClientID    *uuid.UUID
}

func (s *Service) CreateEvent(ctx context.Context, params CreateEventParams) (*Event, error) {
	e := &Event{
		Title:       params.Title,
		Description: params.Description,
		StartsAt:    params.StartsAt,
		EndsAt:      params.EndsAt,
		Location:    params.Location,
		ClientID:    params.ClientID,
	}
	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetEvent(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error) {
	return s.repo.ListEvents(ctx, filter)
}

func (s *Service) UpdateEvent(ctx context.Context, e *Event) error {
	return s.repo.UpdateEvent(ctx, e)
}

func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEvent(ctx, id)
}
