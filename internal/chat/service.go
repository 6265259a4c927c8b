package chat

import (
	"context"
)

type Repository interface {
	CreateMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, channel string, limit int) ([]*Message, error)
}

// Service persists chat messages and feeds the live hub.
type Service struct {
	repo         Repository
	hub          *Hub
	historyLimit int
}

func NewService(repo Repository, hub *Hub, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = 50
	}

	return &Service{repo: repo, hub: hub, historyLimit: historyLimit}
}

type PostParams struct {
	Channel string
	Author  string
	Body    string
}

// Post stores the message and broadcasts it to live subscribers. The
// broadcast happens only after the write succeeds, so subscribers never
// see messages that were not persisted.
func (s *Service) Post(ctx context.Context, params PostParams) (*Message, error) {
	channel := params.Channel
	if channel == "" {
		channel = "general"
	}

	m := &Message{
		Channel: channel,
		Author:  params.Author,
		Body:    params.Body,
	}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	s.hub.Publish(*m)

	return m, nil
}

// History returns the most recent messages in a channel, oldest first.
func (s *Service) History(ctx context.Context, channel string) ([]*Message, error) {
	if channel == "" {
		channel = "general"
	}

	return s.repo.ListMessages(ctx, channel, s.historyLimit)
}

// Subscribe registers a live listener on the hub.
func (s *Service) Subscribe() (<-chan Message, func()) {
	return s.hub.Subscribe()
}
