package schedule

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/schedule"
)

type Handler struct {
	svc *schedule.Service
}

func NewHandler(svc *schedule.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.createTask)
		r.Get("/", h.listTasks)
		r.Get("/{id}", h.getTask)
		r.Patch("/{id}", h.updateTask)
		r.Post("/{id}/complete", h.completeTask)
		r.Delete("/{id}", h.deleteTask)
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", h.createEvent)
		r.Get("/", h.listEvents)
		r.Get("/{id}", h.getEvent)
		r.Patch("/{id}", h.updateEvent)
		r.Delete("/{id}", h.deleteEvent)
	})
}

type createTaskRequest struct {
	Title      string            `json:"title"`
	Notes      string            `json:"notes"`
	Priority   schedule.Priority `json:"priority"`
	DueDate    *time.Time        `json:"due_date"`
	ClientID   *uuid.UUID        `json:"client_id"`
	AssignedTo string            `json:"assigned_to"`
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	t, err := h.svc.CreateTask(r.Context(), schedule.CreateTaskParams{
		Title:      req.Title,
		Notes:      req.Notes,
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		ClientID:   req.ClientID,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(t))
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	filter := schedule.TaskFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(schedule.TaskStatus(s))
	}

	if s := r.URL.Query().Get("assigned_to"); s != "" {
		filter.AssignedTo = new(s)
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	if s := r.URL.Query().Get("due_before"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.DueBefore = new(t)
		}
	}

	tasks, err := h.svc.ListTasks(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponseList(tasks))
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

type updateTaskRequest struct {
	Title      *string              `json:"title,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
	Status     *schedule.TaskStatus `json:"status,omitempty"`
	Priority   *schedule.Priority   `json:"priority,omitempty"`
	DueDate    *time.Time           `json:"due_date,omitempty"`
	AssignedTo *string              `json:"assigned_to,omitempty"`
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Title != nil {
		t.Title = *req.Title
	}

	if req.Notes != nil {
		t.Notes = *req.Notes
	}

	if req.Status != nil {
		t.Status = *req.Status
	}

	if req.Priority != nil {
		t.Priority = *req.Priority
	}

	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}

	if req.AssignedTo != nil {
		t.AssignedTo = *req.AssignedTo
	}

	if err := h.svc.UpdateTask(r.Context(), t); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

func (h *Handler) completeTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.CompleteTask(r.Context(), id); err != nil {
		if errors.Is(err, schedule.ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      time.Time  `json:"ends_at"`
	Location    string     `json:"location"`
	ClientID    *uuid.UUID `json:"client_id"`
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if req.EndsAt.Before(req.StartsAt) {
		http.Error(w, "ends_at must not be before starts_at", http.StatusBadRequest)
		return
	}

	e, err := h.svc.CreateEvent(r.Context(), schedule.CreateEventParams{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		ClientID:    req.ClientID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(e))
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	filter := schedule.EventFilter{}

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.From = new(t)
		}
	}

	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.To = new(t)
		}
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	events, err := h.svc.ListEvents(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponseList(events))
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(e))
}

type updateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Title != nil {
		e.Title = *req.Title
	}

	if req.Description != nil {
		e.Description = *req.Description
	}

	if req.StartsAt != nil {
		e.StartsAt = *req.StartsAt
	}

	if req.EndsAt != nil {
		e.EndsAt = *req.EndsAt
	}

	if req.Location != nil {
		e.Location = *req.Location
	}

	if e.EndsAt.Before(e.StartsAt) {
		http.Error(w, "ends_at must not be before starts_at", http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateEvent(r.Context(), e); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(e))
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteEvent(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
