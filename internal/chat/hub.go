package chat

import "sync"

// subscriberBuffer is how many undelivered messages a subscriber may
// accumulate before further messages to it are dropped.
const subscriberBuffer = 16

// Hub fans live messages out to in-process subscribers. Persistence is
// the store's job; the hub only handles delivery to currently-connected
// listeners. Publishing never blocks: a subscriber that cannot keep up
// misses messages instead of stalling the sender.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Message
	nextID int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Message)}
}

// Subscribe registers a listener. The returned cancel func must be
// called when the listener goes away; it closes the channel.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan Message, subscriberBuffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Publish delivers a message to every subscriber with buffer space.
func (h *Hub) Publish(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- msg:
		default:
			// Subscriber is full; drop rather than block.
		}
	}
}
