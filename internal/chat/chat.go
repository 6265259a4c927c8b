package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat message in a channel.
type Message struct {
	ID        uuid.UUID
	Channel   string
	Author    string
	Body      string
	CreatedAt time.Time
}
