package client

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	UpdateStage(ctx context.Context, id uuid.UUID, stage Stage, closedAt *time.Time) error
	ListClients(ctx context.Context, filter ListFilter) ([]*Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Company     string
	ContactName string
	Email       string
	Phone       string
	Stage       Stage
	DealValue   int64
	AssignedTo  string
	Notes       string
}

type ListFilter struct {
	Stage      *Stage
	AssignedTo *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	stage := params.Stage
	if stage == "" {
		stage = StageProspect
	}

	c := &Client{
		Company:     params.Company,
		ContactName: params.ContactName,
		Email:       params.Email,
		Phone:       params.Phone,
		Stage:       stage,
		DealValue:   params.DealValue,
		AssignedTo:  params.AssignedTo,
		Notes:       params.Notes,
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Client, error) {
	return s.repo.ListClients(ctx, filter)
}

func (s *Service) Update(ctx context.Context, c *Client) error {
	return s.repo.UpdateClient(ctx, c)
}

// UpdateStage moves a client to a new pipeline stage. Entering the closed
// stage stamps ClosedAt; leaving it clears the stamp again.
func (s *Service) UpdateStage(ctx context.Context, id uuid.UUID, stage Stage) error {
	var closedAt *time.Time

	if stage == StageClosed {
		now := time.Now()
		closedAt = &now
	}

	return s.repo.UpdateStage(ctx, id, stage, closedAt)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, id)
}
