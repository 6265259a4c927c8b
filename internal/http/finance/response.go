package finance

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/finance"
)

type budgetResponse struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    uuid.UUID  `json:"client_id"`
	Category    string     `json:"category"`
	Amount      int64      `json:"amount"`
	SpentAmount int64      `json:"spent_amount"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toBudgetResponse(b *finance.Budget) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		ClientID:    b.ClientID,
		Category:    b.Category,
		Amount:      b.Amount,
		SpentAmount: b.SpentAmount,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBudgetResponseList(budgets []*finance.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toBudgetResponse(b)
	}

	return resp
}

type paymentResponse struct {
	ID        uuid.UUID             `json:"id"`
	ClientID  uuid.UUID             `json:"client_id"`
	Amount    int64                 `json:"amount"`
	Status    finance.PaymentStatus `json:"status"`
	Method    string                `json:"method,omitempty"`
	Reference string                `json:"reference,omitempty"`
	Date      time.Time             `json:"date"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt *time.Time            `json:"updated_at,omitempty"`
}

func toPaymentResponse(p *finance.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		ClientID:  p.ClientID,
		Amount:    p.Amount,
		Status:    p.Status,
		Method:    p.Method,
		Reference: p.Reference,
		Date:      p.Date,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPaymentResponseList(payments []*finance.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	return resp
}

type expenseResponse struct {
	ID          uuid.UUID             `json:"id"`
	ClientID    uuid.UUID             `json:"client_id"`
	VendorID    *uuid.UUID            `json:"vendor_id,omitempty"`
	BudgetID    *uuid.UUID            `json:"budget_id,omitempty"`
	Amount      int64                 `json:"amount"`
	Status      finance.ExpenseStatus `json:"status"`
	Description string                `json:"description,omitempty"`
	Date        time.Time             `json:"date"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   *time.Time            `json:"updated_at,omitempty"`
}

func toExpenseResponse(e *finance.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		ClientID:    e.ClientID,
		VendorID:    e.VendorID,
		BudgetID:    e.BudgetID,
		Amount:      e.Amount,
		Status:      e.Status,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toExpenseResponseList(expenses []*finance.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}

	return resp
}

type vendorResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toVendorResponse(v *finance.Vendor) vendorResponse {
	return vendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Category:  v.Category,
		Email:     v.Email,
		Phone:     v.Phone,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func toVendorResponseList(vendors []*finance.Vendor) []vendorResponse {
	resp := make([]vendorResponse, len(vendors))
	for i, v := range vendors {
		resp[i] = toVendorResponse(v)
	}

	return resp
}

type summaryResponse struct {
	ClientID          uuid.UUID `json:"client_id"`
	TotalRevenue      int64     `json:"total_revenue"`
	TotalExpenses     int64     `json:"total_expenses"`
	NetProfit         int64     `json:"net_profit"`
	TotalBudget       int64     `json:"total_budget"`
	ProfitMargin      float64   `json:"profit_margin"`
	BudgetUtilization float64   `json:"budget_utilization"`
	AvgMonthlyRevenue int64     `json:"avg_monthly_revenue"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toSummaryResponse(s *finance.Summary) summaryResponse {
	return summaryResponse{
		ClientID:          s.ClientID,
		TotalRevenue:      s.TotalRevenue,
		TotalExpenses:     s.TotalExpenses,
		NetProfit:         s.NetProfit,
		TotalBudget:       s.TotalBudget,
		ProfitMargin:      s.ProfitMargin,
		BudgetUtilization: s.BudgetUtilization,
		AvgMonthlyRevenue: s.AvgMonthlyRevenue,
		UpdatedAt:         s.UpdatedAt,
	}
}
