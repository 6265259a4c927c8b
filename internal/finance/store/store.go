package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/finance"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Budgets

const selectBudgetColumns = `
	id, client_id, category, amount, spent_amount, start_date, end_date, created_at, updated_at
`

func scanBudget(s scanner) (*finance.Budget, error) {
	var b finance.Budget

	if err := s.Scan(
		&b.ID, &b.ClientID, &b.Category, &b.Amount, &b.SpentAmount,
		&b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b *finance.Budget) error {
	query := `
		INSERT INTO budgets (client_id, category, amount, spent_amount, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.ClientID,
		b.Category,
		b.Amount,
		b.StartDate,
		b.EndDate,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*finance.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, finance.ErrBudgetNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, filter finance.BudgetFilter) ([]*finance.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	query += " ORDER BY start_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*finance.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *finance.Budget) error {
	query := `
		UPDATE budgets
		SET category = $1, amount = $2, spent_amount = $3, start_date = $4, end_date = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		b.Category,
		b.Amount,
		b.SpentAmount,
		b.StartDate,
		b.EndDate,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	return nil
}

// Payments

const selectPaymentColumns = `
	id, client_id, amount, status, method, reference, date, created_at, updated_at
`

func scanPayment(s scanner) (*finance.Payment, error) {
	var p finance.Payment

	var statusStr string

	var method, reference sql.NullString

	if err := s.Scan(
		&p.ID, &p.ClientID, &p.Amount, &statusStr, &method, &reference,
		&p.Date, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = finance.PaymentStatus(statusStr)
	p.Method = method.String
	p.Reference = reference.String

	return &p, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *finance.Payment) error {
	query := `
		INSERT INTO payments (client_id, amount, status, method, reference, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.ClientID,
		p.Amount,
		p.Status,
		p.Method,
		p.Reference,
		p.Date,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments WHERE id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, finance.ErrPaymentNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, filter finance.PaymentFilter) ([]*finance.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*finance.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) UpdatePayment(ctx context.Context, p *finance.Payment) error {
	query := `
		UPDATE payments
		SET amount = $1, status = $2, method = $3, reference = $4, date = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		p.Amount,
		p.Status,
		p.Method,
		p.Reference,
		p.Date,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating payment: %w", err)
	}

	return nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status finance.PaymentStatus) error {
	query := `UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	return nil
}

func (s *Store) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	return nil
}

// Expenses

const selectExpenseColumns = `
	id, client_id, vendor_id, budget_id, amount, status, description, date, created_at, updated_at
`

func scanExpense(s scanner) (*finance.Expense, error) {
	var e finance.Expense

	var statusStr string

	var desc sql.NullString

	if err := s.Scan(
		&e.ID, &e.ClientID, &e.VendorID, &e.BudgetID, &e.Amount, &statusStr,
		&desc, &e.Date, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Status = finance.ExpenseStatus(statusStr)
	e.Description = desc.String

	return &e, nil
}

func (s *Store) CreateExpense(ctx context.Context, e *finance.Expense) error {
	query := `
		INSERT INTO expenses (client_id, vendor_id, budget_id, amount, status, description, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.ClientID,
		e.VendorID,
		e.BudgetID,
		e.Amount,
		e.Status,
		e.Description,
		e.Date,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE id = $1`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, finance.ErrExpenseNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter finance.ExpenseFilter) ([]*finance.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.VendorID != nil {
		query += fmt.Sprintf(" AND vendor_id = $%d", argIdx)

		args = append(args, *filter.VendorID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*finance.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return expenses, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *finance.Expense) error {
	query := `
		UPDATE expenses
		SET vendor_id = $1, budget_id = $2, amount = $3, status = $4, description = $5, date = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		e.VendorID,
		e.BudgetID,
		e.Amount,
		e.Status,
		e.Description,
		e.Date,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) UpdateExpenseStatus(ctx context.Context, id uuid.UUID, status finance.ExpenseStatus) error {
	query := `UPDATE expenses SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating expense status: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return nil
}

// Vendors

const selectVendorColumns = `
	id, name, category, email, phone, created_at, updated_at
`

func scanVendor(s scanner) (*finance.Vendor, error) {
	var v finance.Vendor

	var email, phone sql.NullString

	if err := s.Scan(
		&v.ID, &v.Name, &v.Category, &email, &phone, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}

	v.Email = email.String
	v.Phone = phone.String

	return &v, nil
}

func (s *Store) CreateVendor(ctx context.Context, v *finance.Vendor) error {
	query := `
		INSERT INTO vendors (name, category, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		v.Name,
		v.Category,
		v.Email,
		v.Phone,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating vendor: %w", err)
	}

	return nil
}

func (s *Store) GetVendor(ctx context.Context, id uuid.UUID) (*finance.Vendor, error) {
	query := `SELECT ` + selectVendorColumns + ` FROM vendors WHERE id = $1`

	v, err := scanVendor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, finance.ErrVendorNotFound
		}

		return nil, fmt.Errorf("getting vendor: %w", err)
	}

	return v, nil
}

func (s *Store) ListVendors(ctx context.Context) ([]*finance.Vendor, error) {
	query := `SELECT ` + selectVendorColumns + ` FROM vendors ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*finance.Vendor

	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vendor: %w", err)
		}

		vendors = append(vendors, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vendor rows: %w", err)
	}

	return vendors, nil
}

func (s *Store) UpdateVendor(ctx context.Context, v *finance.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $1, category = $2, email = $3, phone = $4, updated_at = NOW()
		WHERE id = $5
	`

	_, err := s.db.ExecContext(ctx, query,
		v.Name,
		v.Category,
		v.Email,
		v.Phone,
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vendor: %w", err)
	}

	return nil
}

func (s *Store) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting vendor: %w", err)
	}

	return nil
}

// Summary

// GetSummary returns the derived summary row for a client. The table is
// only ever written by UpsertSummary.
func (s *Store) GetSummary(ctx context.Context, clientID uuid.UUID) (*finance.Summary, error) {
	query := `
		SELECT client_id, total_revenue, total_expenses, net_profit, total_budget,
			profit_margin, budget_utilization, avg_monthly_revenue, updated_at
		FROM client_financial_summaries
		WHERE client_id = $1
	`

	var sum finance.Summary

	err := s.db.QueryRowContext(ctx, query, clientID).Scan(
		&sum.ClientID, &sum.TotalRevenue, &sum.TotalExpenses, &sum.NetProfit,
		&sum.TotalBudget, &sum.ProfitMargin, &sum.BudgetUtilization,
		&sum.AvgMonthlyRevenue, &sum.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, finance.ErrSummaryNotFound
		}

		return nil, fmt.Errorf("getting summary: %w", err)
	}

	return &sum, nil
}

func (s *Store) UpsertSummary(ctx context.Context, sum *finance.Summary) error {
	query := `
		INSERT INTO client_financial_summaries
			(client_id, total_revenue, total_expenses, net_profit, total_budget,
			 profit_margin, budget_utilization, avg_monthly_revenue, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (client_id) DO UPDATE SET
			total_revenue = EXCLUDED.total_revenue,
			total_expenses = EXCLUDED.total_expenses,
			net_profit = EXCLUDED.net_profit,
			total_budget = EXCLUDED.total_budget,
			profit_margin = EXCLUDED.profit_margin,
			budget_utilization = EXCLUDED.budget_utilization,
			avg_monthly_revenue = EXCLUDED.avg_monthly_revenue,
			updated_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query,
		sum.ClientID,
		sum.TotalRevenue,
		sum.TotalExpenses,
		sum.NetProfit,
		sum.TotalBudget,
		sum.ProfitMargin,
		sum.BudgetUtilization,
		sum.AvgMonthlyRevenue,
	)
	if err != nil {
		return fmt.Errorf("upserting summary: %w", err)
	}

	return nil
}
