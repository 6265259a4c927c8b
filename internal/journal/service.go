package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
	UpdateEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Title     string
	Body      string
	Mood      string
	Author    string
	EntryDate time.Time
}

type ListFilter struct {
	Author    *string
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	entryDate := params.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	e := &Entry{
		Title:     params.Title,
		Body:      params.Body,
		Mood:      params.Mood,
		Author:    params.Author,
		EntryDate: entryDate,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

func (s *Service) Update(ctx context.Context, e *Entry) error {
	return s.repo.UpdateEntry(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, id)
}
