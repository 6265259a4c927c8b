package finance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=finance
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, filter BudgetFilter) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error

	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]*Payment, error)
	UpdatePayment(ctx context.Context, p *Payment) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error
	DeletePayment(ctx context.Context, id uuid.UUID) error

	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	UpdateExpenseStatus(ctx context.Context, id uuid.UUID, status ExpenseStatus) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	CreateVendor(ctx context.Context, v *Vendor) error
	GetVendor(ctx context.Context, id uuid.UUID) (*Vendor, error)
	ListVendors(ctx context.Context) ([]*Vendor, error)
	UpdateVendor(ctx context.Context, v *Vendor) error
	DeleteVendor(ctx context.Context, id uuid.UUID) error

	GetSummary(ctx context.Context, clientID uuid.UUID) (*Summary, error)
	UpsertSummary(ctx context.Context, s *Summary) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type BudgetFilter struct {
	ClientID *uuid.UUID
	Category *string
}

type PaymentFilter struct {
	ClientID  *uuid.UUID
	Status    *PaymentStatus
	StartDate *time.Time
	EndDate   *time.Time
}

type ExpenseFilter struct {
	ClientID *uuid.UUID
	VendorID *uuid.UUID
	Status   *ExpenseStatus
}

// recompute rebuilds the derived summary for a client from its current
// source rows and upserts it. It runs after every budget/payment/expense
// mutation; a failure here must not undo the primary write, so errors are
// logged and swallowed. The next mutation on the same client re-triggers
// the recompute and self-corrects the stale row.
func (s *Service) recompute(ctx context.Context, clientID uuid.UUID) {
	if err := s.Recompute(ctx, clientID); err != nil {
		slog.Error("financial summary recompute failed; summary is stale until next mutation",
			"client_id", clientID, "error", err)
	}
}

// Recompute derives and upserts the summary row for a client. Idempotent:
// the result depends only on the current payments/expenses/budgets.
func (s *Service) Recompute(ctx context.Context, clientID uuid.UUID) error {
	payments, err := s.repo.ListPayments(ctx, PaymentFilter{ClientID: &clientID})
	if err != nil {
		return fmt.Errorf("listing payments: %w", err)
	}

	expenses, err := s.repo.ListExpenses(ctx, ExpenseFilter{ClientID: &clientID})
	if err != nil {
		return fmt.Errorf("listing expenses: %w", err)
	}

	budgets, err := s.repo.ListBudgets(ctx, BudgetFilter{ClientID: &clientID})
	if err != nil {
		return fmt.Errorf("listing budgets: %w", err)
	}

	summary := ComputeSummary(clientID, payments, expenses, budgets)

	if err := s.repo.UpsertSummary(ctx, summary); err != nil {
		return fmt.Errorf("upserting summary: %w", err)
	}

	return nil
}

// GetSummary returns the derived financial summary for a client.
func (s *Service) GetSummary(ctx context.Context, clientID uuid.UUID) (*Summary, error) {
	return s.repo.GetSummary(ctx, clientID)
}

// Budgets

type CreateBudgetParams struct {
	ClientID  uuid.UUID
	Category  string
	Amount    int64
	StartDate time.Time
	EndDate   time.Time
}

func (s *Service) CreateBudget(ctx context.Context, params CreateBudgetParams) (*Budget, error) {
	b := &Budget{
		ClientID:  params.ClientID,
		Category:  params.Category,
		Amount:    params.Amount,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	s.recompute(ctx, b.ClientID)

	return b, nil
}

func (s *Service) GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

func (s *Service) ListBudgets(ctx context.Context, filter BudgetFilter) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, filter)
}

func (s *Service) UpdateBudget(ctx context.Context, b *Budget) error {
	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return err
	}

	s.recompute(ctx, b.ClientID)

	return nil
}

func (s *Service) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBudget(ctx, id); err != nil {
		return err
	}

	s.recompute(ctx, b.ClientID)

	return nil
}

// Payments

type CreatePaymentParams struct {
	ClientID  uuid.UUID
	Amount    int64
	Status    PaymentStatus
	Method    string
	Reference string
	Date      time.Time
}

func (s *Service) CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, error) {
	status := params.Status
	if status == "" {
		status = PaymentStatusPending
	}

	p := &Payment{
		ClientID:  params.ClientID,
		Amount:    params.Amount,
		Status:    status,
		Method:    params.Method,
		Reference: params.Reference,
		Date:      params.Date,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	s.recompute(ctx, p.ClientID)

	return p, nil
}

// CreatePayments records a batch of payments (e.g. a bank statement
// import) and recomputes each affected client's summary once.
func (s *Service) CreatePayments(ctx context.Context, params []CreatePaymentParams) ([]*Payment, error) {
	if len(params) == 0 {
		return nil, nil
	}

	payments := make([]*Payment, 0, len(params))
	affected := make(map[uuid.UUID]struct{})

	for _, param := range params {
		status := param.Status
		if status == "" {
			status = PaymentStatusPending
		}

		p := &Payment{
			ClientID:  param.ClientID,
			Amount:    param.Amount,
			Status:    status,
			Method:    param.Method,
			Reference: param.Reference,
			Date:      param.Date,
		}
		if err := s.repo.CreatePayment(ctx, p); err != nil {
			return nil, fmt.Errorf("creating payment: %w", err)
		}

		payments = append(payments, p)
		affected[p.ClientID] = struct{}{}
	}

	for clientID := range affected {
		s.recompute(ctx, clientID)
	}

	return payments, nil
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context, filter PaymentFilter) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}

func (s *Service) UpdatePayment(ctx context.Context, p *Payment) error {
	if err := s.repo.UpdatePayment(ctx, p); err != nil {
		return err
	}

	s.recompute(ctx, p.ClientID)

	return nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error {
	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return err
	}

	s.recompute(ctx, p.ClientID)

	return nil
}

func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeletePayment(ctx, id); err != nil {
		return err
	}

	s.recompute(ctx, p.ClientID)

	return nil
}

// Expenses

type CreateExpenseParams struct {
	ClientID    uuid.UUID
	VendorID    *uuid.UUID
	BudgetID    *uuid.UUID
	Amount      int64
	Status      ExpenseStatus
	Description string
	Date        time.Time
}

func (s *Service) CreateExpense(ctx context.Context, params CreateExpenseParams) (*Expense, error) {
	status := params.Status
	if status == "" {
		status = ExpenseStatusPending
	}

	e := &Expense{
		ClientID:    params.ClientID,
		VendorID:    params.VendorID,
		BudgetID:    params.BudgetID,
		Amount:      params.Amount,
		Status:      status,
		Description: params.Description,
		Date:        params.Date,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	s.recompute(ctx, e.ClientID)

	return e, nil
}

func (s *Service) GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

func (s *Service) UpdateExpense(ctx context.Context, e *Expense) error {
	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return err
	}

	s.recompute(ctx, e.ClientID)

	return nil
}

func (s *Service) UpdateExpenseStatus(ctx context.Context, id uuid.UUID, status ExpenseStatus) error {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateExpenseStatus(ctx, id, status); err != nil {
		return err
	}

	s.recompute(ctx, e.ClientID)

	return nil
}

func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return err
	}

	s.recompute(ctx, e.ClientID)

	return nil
}

// Vendors

type CreateVendorParams struct {
	Name     string
	Category string
	Email    string
	Phone    string
}

func (s *Service) CreateVendor(ctx context.Context, params CreateVendorParams) (*Vendor, error) {
	v := &Vendor{
		Name:     params.Name,
		Category: params.Category,
		Email:    params.Email,
		Phone:    params.Phone,
	}
	if err := s.repo.CreateVendor(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) GetVendor(ctx context.Context, id uuid.UUID) (*Vendor, error) {
	return s.repo.GetVendor(ctx, id)
}

func (s *Service) ListVendors(ctx context.Context) ([]*Vendor, error) {
	return s.repo.ListVendors(ctx)
}

func (s *Service) UpdateVendor(ctx context.Context, v *Vendor) error {
	return s.repo.UpdateVendor(ctx, v)
}

func (s *Service) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteVendor(ctx, id)
}
