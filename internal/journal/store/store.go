package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/journal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	id, title, body, mood, author, entry_date, created_at, updated_at
`

func scanEntry(s scanner) (*journal.Entry, error) {
	var e journal.Entry

	var mood sql.NullString

	if err := s.Scan(
		&e.ID, &e.Title, &e.Body, &mood, &e.Author, &e.EntryDate,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Mood = mood.String

	return &e, nil
}

func (s *Store) CreateEntry(ctx context.Context, e *journal.Entry) error {
	query := `
		INSERT INTO journal_entries (title, body, mood, author, entry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Title,
		e.Body,
		e.Mood,
		e.Author,
		e.EntryDate,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating journal entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM journal_entries WHERE id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, journal.ErrNotFound
		}

		return nil, fmt.Errorf("getting journal entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter journal.ListFilter) ([]*journal.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM journal_entries WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Author != nil {
		query += fmt.Sprintf(" AND author = $%d", argIdx)

		args = append(args, *filter.Author)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND entry_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND entry_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY entry_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*journal.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal rows: %w", err)
	}

	return entries, nil
}

func (s *Store) UpdateEntry(ctx context.Context, e *journal.Entry) error {
	query := `
		UPDATE journal_entries
		SET title = $1, body = $2, mood = $3, entry_date = $4, updated_at = NOW()
		WHERE id = $5
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Title,
		e.Body,
		e.Mood,
		e.EntryDate,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating journal entry: %w", err)
	}

	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting journal entry: %w", err)
	}

	return nil
}
