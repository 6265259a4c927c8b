package finance

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/finance"
)

type Handler struct {
	svc *finance.Service
}

func NewHandler(svc *finance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/budgets", func(r chi.Router) {
		r.Post("/", h.createBudget)
		r.Get("/", h.listBudgets)
		r.Get("/{id}", h.getBudget)
		r.Patch("/{id}", h.updateBudget)
		r.Delete("/{id}", h.deleteBudget)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.createPayment)
		r.Get("/", h.listPayments)
		r.Get("/{id}", h.getPayment)
		r.Patch("/{id}/status", h.updatePaymentStatus)
		r.Delete("/{id}", h.deletePayment)
	})

	r.Route("/expenses", func(r chi.Router) {
		r.Post("/", h.createExpense)
		r.Get("/", h.listExpenses)
		r.Get("/{id}", h.getExpense)
		r.Patch("/{id}/status", h.updateExpenseStatus)
		r.Delete("/{id}", h.deleteExpense)
	})

	r.Route("/vendors", func(r chi.Router) {
		r.Post("/", h.createVendor)
		r.Get("/", h.listVendors)
		r.Get("/{id}", h.getVendor)
		r.Patch("/{id}", h.updateVendor)
		r.Delete("/{id}", h.deleteVendor)
	})

	// Summaries are derived rows; no mutating routes.
	r.Get("/summaries/{clientID}", h.getSummary)
}

type createBudgetRequest struct {
	ClientID  uuid.UUID `json:"client_id"`
	Category  string    `json:"category"`
	Amount    int64     `json:"amount"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (h *Handler) createBudget(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ClientID == uuid.Nil {
		http.Error(w, "client_id is required", http.StatusBadRequest)
		return
	}

	b, err := h.svc.CreateBudget(r.Context(), finance.CreateBudgetParams{
		ClientID:  req.ClientID,
		Category:  req.Category,
		Amount:    req.Amount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toBudgetResponse(b))
}

func (h *Handler) listBudgets(w http.ResponseWriter, r *http.Request) {
	filter := finance.BudgetFilter{}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = new(s)
	}

	budgets, err := h.svc.ListBudgets(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetResponseList(budgets))
}

func (h *Handler) getBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.GetBudget(r.Context(), id)
	if err != nil {
		if errors.Is(err, finance.ErrBudgetNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

type updateBudgetRequest struct {
	Category  *string    `json:"category,omitempty"`
	Amount    *int64     `json:"amount,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (h *Handler) updateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.GetBudget(r.Context(), id)
	if err != nil {
		if errors.Is(err, finance.ErrBudgetNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Category != nil {
		b.Category = *req.Category
	}

	if req.Amount != nil {
		b.Amount = *req.Amount
	}

	if req.StartDate != nil {
		b.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		b.EndDate = *req.EndDate
	}

	if err := h.svc.UpdateBudget(r.Context(), b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (h *Handler) deleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteBudget(r.Context(), id); err != nil {
		if errors.Is(err, finance.ErrBudgetNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createPaymentRequest struct {
	ClientID  uuid.UUID             `json:"client_id"`
	Amount    int64                 `json:"amount"`
	Status    finance.PaymentStatus `json:"status"`
	Method    string                `json:"method"`
	Reference string                `json:"reference"`
	Date      time.Time             `json:"date"`
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ClientID == uuid.Nil {
		http.Error(w, "client_id is required", http.StatusBadRequest)
		return
	}

	p, err := h.svc.CreatePayment(r.Context(), finance.CreatePaymentParams{
		ClientID:  req.ClientID,
		Amount:    req.Amount,
		Status:    req.Status,
		Method:    req.Method,
		Reference: req.Reference,
		Date:      req.Date,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	filter := finance.PaymentFilter{}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(finance.PaymentStatus(s))
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	payments, err := h.svc.ListPayments(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponseList(payments))
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.GetPayment(r.Context(), id)
	if err != nil {
		if errors.Is(err, finance.ErrPaymentNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

type updatePaymentStatusRequest struct {
	Status finance.PaymentStatus `json:"status"`
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdatePaymentStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, finance.ErrPaymentNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeletePayment(r.Context(), id); err != nil {
		if errors.Is(err, finance.ErrPaymentNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createExpenseRequest struct {
	ClientID    uuid.UUID             `json:"client_id"`
	VendorID    *uuid.UUID            `json:"vendor_id"`
	BudgetID    *uuid.UUID            `json:"budget_id"`
	Amount      int64                 `json:"amount"`
	Status      finance.ExpenseStatus `json:"status"`
	Description string                `json:"description"`
	Date        time.Time             `json:"date"`
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ClientID == uuid.Nil {
		http.Error(w, "client_id is required", http.StatusBadRequest)
		return
	}

	e, err := h.svc.CreateExpense(r.Context(), finance.CreateExpenseParams{
		ClientID:    req.ClientID,
		VendorID:    req.VendorID,
		BudgetID:    req.BudgetID,
		Amount:      req.Amount,
		Status:      req.Status,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(e))
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	filter := finance.ExpenseFilter{}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	if s := r.URL.Query().Get("vendor_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid vendor_id", http.StatusBadRequest)
			return
		}

		filter.VendorID = &id
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(finance.ExpenseStatus(s))
	}

	expenses, err := h.svc.ListExpenses(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponseList(expenses))
}

func (h *Handler) getExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.GetExpense(r.Context(), id)
	if err != nil {
		if errors.Is(err, finance.ErrExpenseNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(e))
}

type updateExpenseStatusRequest struct {
	Status finance.ExpenseStatus `json:"status"`
}

func (h *Handler) updateExpenseStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateExpenseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateExpenseStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, finance.ErrExpenseNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, finance.ErrExpenseNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createVendorRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	var req createVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	v, err := h.svc.CreateVendor(r.Context(), finance.CreateVendorParams{
		Name:     req.Name,
		Category: req.Category,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toVendorResponse(v))
}

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.svc.ListVendors(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toVendorResponseList(vendors))
}

func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	v, err := h.svc.GetVendor(r.Context(), id)
	if err != nil {
		if errors.Is(err, finance.ErrVendorNotFound) {
			http.Error(w, "vendor not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toVendorResponse(v))
}

type updateVendorRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

func (h *Handler) updateVendor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.svc.GetVendor(r.Context(), id)
	if err != nil {
		if errors.Is(err, finance.ErrVendorNotFound) {
			http.Error(w, "vendor not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		v.Name = *req.Name
	}

	if req.Category != nil {
		v.Category = *req.Category
	}

	if req.Email != nil {
		v.Email = *req.Email
	}

	if req.Phone != nil {
		v.Phone = *req.Phone
	}

	if err := h.svc.UpdateVendor(r.Context(), v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toVendorResponse(v))
}

func (h *Handler) deleteVendor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteVendor(r.Context(), id); err != nil {
		if errors.Is(err, finance.ErrVendorNotFound) {
			http.Error(w, "vendor not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}

	s, err := h.svc.GetSummary(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, finance.ErrSummaryNotFound) {
			http.Error(w, "summary not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(s))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
