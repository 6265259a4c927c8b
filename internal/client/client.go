package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

// Stage represents a client's position in the sales pipeline.
type Stage string

const (
	StageProspect    Stage = "prospect"
	StageConnected   Stage = "connected"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosed      Stage = "closed"
	StageLost        Stage = "lost"
)

// Stages lists all pipeline stages in funnel order.
var Stages = []Stage{
	StageProspect,
	StageConnected,
	StageProposal,
	StageNegotiation,
	StageClosed,
	StageLost,
}

// Active reports whether the stage represents an open deal.
func (s Stage) Active() bool {
	return s != StageClosed && s != StageLost
}

// Valid reports whether s is a known pipeline stage.
func (s Stage) Valid() bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}

	return false
}

// Client represents a company/contact being tracked through the pipeline.
type Client struct {
	ID          uuid.UUID
	Company     string
	ContactName string
	Email       string
	Phone       string
	Stage       Stage
	DealValue   int64 // Deal value in cents
	AssignedTo  string
	Notes       string
	ClosedAt    *time.Time // Set when the deal enters the closed stage
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}
