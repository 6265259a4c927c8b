package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/schedule"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Tasks

const selectTaskColumns = `
	id, title, notes, status, priority, due_date, client_id, assigned_to,
	completed_at, created_at, updated_at
`

func scanTask(s scanner) (*schedule.Task, error) {
	var t schedule.Task

	var statusStr, priorityStr string

	var notes sql.NullString

	if err := s.Scan(
		&t.ID, &t.Title, &notes, &statusStr, &priorityStr, &t.DueDate,
		&t.ClientID, &t.AssignedTo, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = schedule.TaskStatus(statusStr)
	t.Priority = schedule.Priority(priorityStr)
	t.Notes = notes.String

	return &t, nil
}

func (s *Store) CreateTask(ctx context.Context, t *schedule.Task) error {
	query := `
		INSERT INTO tasks (title, notes, status, priority, due_date, client_id, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.Title,
		t.Notes,
		t.Status,
		t.Priority,
		t.DueDate,
		t.ClientID,
		t.AssignedTo,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	return nil
}

func (s *Store) GetTask(ctx context.Context, id uuid.UUID) (*schedule.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, schedule.ErrTaskNotFound
		}

		return nil, fmt.Errorf("getting task: %w", err)
	}

	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, filter schedule.TaskFilter) ([]*schedule.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM tasks WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.AssignedTo != nil {
		query += fmt.Sprintf(" AND assigned_to = $%d", argIdx)

		args = append(args, *filter.AssignedTo)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.DueBefore != nil {
		query += fmt.Sprintf(" AND due_date <= $%d", argIdx)

		args = append(args, *filter.DueBefore)
		argIdx++
	}

	query += " ORDER BY due_date ASC NULLS LAST, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*schedule.Task

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	return tasks, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *schedule.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, notes = $2, status = $3, priority = $4, due_date = $5,
			client_id = $6, assigned_to = $7, completed_at = $8, updated_at = NOW()
		WHERE id = $9
	`

	_, err := s.db.ExecContext(ctx, query,
		t.Title,
		t.Notes,
		t.Status,
		t.Priority,
		t.DueDate,
		t.ClientID,
		t.AssignedTo,
		t.CompletedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	return nil
}

func (s *Store) CompleteTask(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	query := `
		UPDATE tasks
		SET status = $1, completed_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	_, err := s.db.ExecContext(ctx, query, schedule.TaskStatusDone, completedAt, id)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}

	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	return nil
}

// Events

const selectEventColumns = `
	id, title, description, starts_at, ends_at, location, client_id, created_at, updated_at
`

func scanEvent(s scanner) (*schedule.Event, error) {
	var e schedule.Event

	var desc, location sql.NullString

	if err := s.Scan(
		&e.ID, &e.Title, &desc, &e.StartsAt, &e.EndsAt, &location,
		&e.ClientID, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Description = desc.String
	e.Location = location.String

	return &e, nil
}

func (s *Store) CreateEvent(ctx context.Context, e *schedule.Event) error {
	query := `
		INSERT INTO events (title, description, starts_at, ends_at, location, client_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Title,
		e.Description,
		e.StartsAt,
		e.EndsAt,
		e.Location,
		e.ClientID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}

	return nil
}

func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*schedule.Event, error) {
	query := `SELECT ` + selectEventColumns + ` FROM events WHERE id = $1`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, schedule.ErrEventNotFound
		}

		return nil, fmt.Errorf("getting event: %w", err)
	}

	return e, nil
}

func (s *Store) ListEvents(ctx context.Context, filter schedule.EventFilter) ([]*schedule.Event, error) {
	query := `SELECT ` + selectEventColumns + ` FROM events WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND starts_at >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND starts_at <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	query += " ORDER BY starts_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []*schedule.Event

	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}

		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event rows: %w", err)
	}

	return events, nil
}

func (s *Store) UpdateEvent(ctx context.Context, e *schedule.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, starts_at = $3, ends_at = $4,
			location = $5, client_id = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Title,
		e.Description,
		e.StartsAt,
		e.EndsAt,
		e.Location,
		e.ClientID,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	return nil
}
