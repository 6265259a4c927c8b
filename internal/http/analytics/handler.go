package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomvds/opsdesk/internal/analytics"
	"github.com/tomvds/opsdesk/internal/client"
	"github.com/tomvds/opsdesk/internal/schedule"
)

type Handler struct {
	clients  *client.Service
	schedule *schedule.Service
}

func NewHandler(clients *client.Service, scheduleSvc *schedule.Service) *Handler {
	return &Handler{
		clients:  clients,
		schedule: scheduleSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
}

// dashboard loads the full dataset and derives the metrics in memory.
// Fine at small-team scale; revisit if client counts grow past a few
// thousand.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	in := analytics.Input{}

	if s := r.URL.Query().Get("days"); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil || days <= 0 {
			http.Error(w, "invalid days", http.StatusBadRequest)
			return
		}

		in.WindowDays = days
	}

	clients, err := h.clients.List(r.Context(), client.ListFilter{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	tasks, err := h.schedule.ListTasks(r.Context(), schedule.TaskFilter{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	events, err := h.schedule.ListEvents(r.Context(), schedule.EventFilter{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	in.Clients = clients
	in.Tasks = tasks
	in.Events = events

	dashboard := analytics.Build(in, time.Now())

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(dashboard)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
