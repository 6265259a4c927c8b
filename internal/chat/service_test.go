package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock Repository
type mockRepo struct {
	createFunc func(ctx context.Context, m *Message) error
	listFunc   func(ctx context.Context, channel string, limit int) ([]*Message, error)
}

func (m *mockRepo) CreateMessage(ctx context.Context, msg *Message) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, msg)
	}

	msg.ID = uuid.New()
	msg.CreatedAt = time.Now()

	return nil
}

func (m *mockRepo) ListMessages(ctx context.Context, channel string, limit int) ([]*Message, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, channel, limit)
	}

	return nil, nil
}

func TestService_Post_BroadcastsAfterPersist(t *testing.T) {
	hub := NewHub()
	svc := NewService(&mockRepo{}, hub, 50)

	ch, cancel := svc.Subscribe()
	defer cancel()

	msg, err := svc.Post(context.Background(), PostParams{Author: "rita", Body: "standup in 5"})
	require.NoError(t, err)
	assert.Equal(t, "general", msg.Channel)
	assert.NotEmpty(t, msg.ID)

	select {
	case got := <-ch:
		assert.Equal(t, msg.Body, got.Body)
		assert.NotEmpty(t, got.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestService_Post_NoBroadcastOnStoreError(t *testing.T) {
	hub := NewHub()
	repo := &mockRepo{
		createFunc: func(_ context.Context, _ *Message) error {
			return errors.New("db down")
		},
	}
	svc := NewService(repo, hub, 50)

	ch, cancel := svc.Subscribe()
	defer cancel()

	_, err := svc.Post(context.Background(), PostParams{Body: "lost"})
	assert.Error(t, err)

	select {
	case <-ch:
		t.Fatal("unpersisted message was broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestService_History_UsesConfiguredLimit(t *testing.T) {
	var gotChannel string

	var gotLimit int

	repo := &mockRepo{
		listFunc: func(_ context.Context, channel string, limit int) ([]*Message, error) {
			gotChannel = channel
			gotLimit = limit
			return []*Message{{Body: "hi"}}, nil
		},
	}
	svc := NewService(repo, NewHub(), 25)

	msgs, err := svc.History(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.Equal(t, "general", gotChannel)
	assert.Equal(t, 25, gotLimit)
}
