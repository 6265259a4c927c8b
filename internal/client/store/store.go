package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/client"
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

// scanClient reads a client row from the scanner.
// Expected column order: id, company, contact_name, email, phone, stage,
// deal_value, assigned_to, notes, closed_at, created_at, updated_at, deleted_at
func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var stageStr string

	var notes sql.NullString

	if err := s.Scan(
		&c.ID, &c.Company, &c.ContactName, &c.Email, &c.Phone, &stageStr,
		&c.DealValue, &c.AssignedTo, &notes, &c.ClosedAt,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	); err != nil {
		return nil, err
	}

	c.Stage = client.Stage(stageStr)
	c.Notes = notes.String

	return &c, nil
}

const selectClientColumns = `
	id, company, contact_name, email, phone, stage, deal_value,
	assigned_to, notes, closed_at, created_at, updated_at, deleted_at
`

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (company, contact_name, email, phone, stage, deal_value, assigned_to, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Company,
		c.ContactName,
		c.Email,
		c.Phone,
		c.Stage,
		c.DealValue,
		c.AssignedTo,
		c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients
		WHERE id = $1 AND deleted_at IS NULL`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients
		WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Stage != nil {
		query += fmt.Sprintf(" AND stage = $%d", argIdx)

		args = append(args, *filter.Stage)
		argIdx++
	}

	if filter.AssignedTo != nil {
		query += fmt.Sprintf(" AND assigned_to = $%d", argIdx)

		args = append(args, *filter.AssignedTo)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET company = $1, contact_name = $2, email = $3, phone = $4,
			deal_value = $5, assigned_to = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Company,
		c.ContactName,
		c.Email,
		c.Phone,
		c.DealValue,
		c.AssignedTo,
		c.Notes,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) UpdateStage(ctx context.Context, id uuid.UUID, stage client.Stage, closedAt *time.Time) error {
	query := `
		UPDATE clients
		SET stage = $1, closed_at = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, stage, closedAt, id)
	if err != nil {
		return fmt.Errorf("updating stage: %w", err)
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE clients
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}
