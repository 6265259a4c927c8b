package chat

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe()
	defer cancel1()

	ch2, cancel2 := hub.Subscribe()
	defer cancel2()

	msg := Message{ID: uuid.New(), Channel: "general", Body: "hello"}
	hub.Publish(msg)

	for _, ch := range []<-chan Message{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, msg, got)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for message")
		}
	}
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Cancel is safe to call twice.
	cancel()

	// Publishing after cancel must not panic or deliver.
	hub.Publish(Message{Body: "late"})
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()

	// Never read from this subscriber.
	_, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})

	go func() {
		defer close(done)

		for i := 0; i < subscriberBuffer*3; i++ {
			hub.Publish(Message{Body: "flood"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHub_DroppedMessagesAreOldestFirstTail(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(Message{Body: "msg"})
	}

	// Only the buffered prefix is retained.
	received := 0

	for {
		select {
		case <-ch:
			received++
		default:
			require.Equal(t, subscriberBuffer, received)
			return
		}
	}
}
