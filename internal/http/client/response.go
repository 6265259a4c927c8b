package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/client"
)

type clientResponse struct {
	ID          uuid.UUID    `json:"id"`
	Company     string       `json:"company"`
	ContactName string       `json:"contact_name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Stage       client.Stage `json:"stage"`
	DealValue   int64        `json:"deal_value"`
	AssignedTo  string       `json:"assigned_to"`
	Notes       string       `json:"notes,omitempty"`
	ClosedAt    *time.Time   `json:"closed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:          c.ID,
		Company:     c.Company,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Stage:       c.Stage,
		DealValue:   c.DealValue,
		AssignedTo:  c.AssignedTo,
		Notes:       c.Notes,
		ClosedAt:    c.ClosedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}
