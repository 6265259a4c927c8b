package chat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/auth"
	"github.com/tomvds/opsdesk/internal/chat"
)

type Handler struct {
	svc *chat.Service
}

func NewHandler(svc *chat.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/messages", h.history)
	r.Post("/messages", h.post)
	r.Get("/stream", h.stream)
}

type messageResponse struct {
	ID        uuid.UUID `json:"id"`
	Channel   string    `json:"channel"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(m *chat.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Channel:   m.Channel,
		Author:    m.Author,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.History(r.Context(), r.URL.Query().Get("channel"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]messageResponse, len(msgs))
	for i, m := range msgs {
		resp[i] = toResponse(m)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type postMessageRequest struct {
	Channel string `json:"channel"`
	Body    string `json:"body"`
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Body == "" {
		http.Error(w, "body is required", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Post(r.Context(), chat.PostParams{
		Channel: req.Channel,
		Author:  auth.UserID(r.Context()),
		Body:    req.Body,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// stream delivers live messages over server-sent events. Messages posted
// to any channel are streamed; clients filter on the channel field.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	msgs, cancel := h.svc.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case m, open := <-msgs:
			if !open {
				return
			}

			data, err := json.Marshal(toResponse(&m))
			if err != nil {
				slog.Error("failed to encode chat event", "error", err)
				continue
			}

			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
