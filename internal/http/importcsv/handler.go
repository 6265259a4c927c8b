package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/finance"
	"github.com/tomvds/opsdesk/internal/importer"
)

type Handler struct {
	importSvc  *importer.Service
	financeSvc *finance.Service
}

func NewHandler(importSvc *importer.Service, financeSvc *finance.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		financeSvc: financeSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type paymentResponse struct {
	ID        uuid.UUID             `json:"id"`
	ClientID  uuid.UUID             `json:"client_id"`
	Amount    int64                 `json:"amount"`
	Status    finance.PaymentStatus `json:"status"`
	Reference string                `json:"reference"`
	Date      time.Time             `json:"date"`
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Payments []paymentResponse `json:"payments"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatBankCSV
	}

	clientID, err := uuid.Parse(r.FormValue("client_id"))
	if err != nil {
		http.Error(w, "client_id field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, clientID, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payments, err := h.financeSvc.CreatePayments(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := importSuccessResponse{
		Imported: len(payments),
		Payments: make([]paymentResponse, 0, len(payments)),
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, paymentResponse{
			ID:        p.ID,
			ClientID:  p.ClientID,
			Amount:    p.Amount,
			Status:    p.Status,
			Reference: p.Reference,
			Date:      p.Date,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
