package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomvds/opsdesk/internal/chat"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateMessage(ctx context.Context, m *chat.Message) error {
	query := `
		INSERT INTO chat_messages (channel, author, body, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.Channel,
		m.Author,
		m.Body,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating chat message: %w", err)
	}

	return nil
}

// ListMessages returns the latest messages in a channel, oldest first.
func (s *Store) ListMessages(ctx context.Context, channel string, limit int) ([]*chat.Message, error) {
	query := `
		SELECT id, channel, author, body, created_at
		FROM (
			SELECT id, channel, author, body, created_at
			FROM chat_messages
			WHERE channel = $1
			ORDER BY created_at DESC
			LIMIT $2
		) latest
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, channel, limit)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var messages []*chat.Message

	for rows.Next() {
		var m chat.Message

		if err := rows.Scan(&m.ID, &m.Channel, &m.Author, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}

		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat rows: %w", err)
	}

	return messages, nil
}
