package finance

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrVendorNotFound  = errors.New("vendor not found")
	ErrSummaryNotFound = errors.New("summary not found")
)

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// ExpenseStatus represents the approval state of an expense.
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
)

// Budget is an amount allocated to a client/category over a date range.
type Budget struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Category    string
	Amount      int64 // Allocated amount in cents
	SpentAmount int64
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Payment is an amount received from a client.
type Payment struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	Amount    int64 // Amount in cents
	Status    PaymentStatus
	Method    string
	Reference string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Expense is an amount paid to a vendor on behalf of a client, optionally
// drawing on a budget.
type Expense struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	VendorID    *uuid.UUID
	BudgetID    *uuid.UUID
	Amount      int64 // Amount in cents
	Status      ExpenseStatus
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Vendor is a supplier expenses are paid to.
type Vendor struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Summary is the derived per-client financial aggregate. It is entirely
// owned by the recompute routine; API consumers only ever read it.
type Summary struct {
	ClientID          uuid.UUID
	TotalRevenue      int64 // Sum of completed payments, in cents
	TotalExpenses     int64 // Sum of approved expenses, in cents
	NetProfit         int64
	TotalBudget       int64
	ProfitMargin      float64 // Percentage, 0 when revenue is 0
	BudgetUtilization float64 // Percentage, 0 when no budget is allocated
	AvgMonthlyRevenue int64   // Cents per month spanned by completed payments
	UpdatedAt         time.Time
}
