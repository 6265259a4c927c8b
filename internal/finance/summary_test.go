package finance_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tomvds/opsdesk/internal/finance"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeSummary_NoPayments(t *testing.T) {
	clientID := uuid.New()

	got := finance.ComputeSummary(clientID, nil, nil, nil)

	assert.Equal(t, clientID, got.ClientID)
	assert.Zero(t, got.TotalRevenue)
	assert.Zero(t, got.TotalExpenses)
	assert.Zero(t, got.NetProfit)
	assert.Zero(t, got.ProfitMargin)
	assert.Zero(t, got.BudgetUtilization)
	assert.Zero(t, got.AvgMonthlyRevenue)
}

func TestComputeSummary_OnlyCompletedAndApprovedCount(t *testing.T) {
	clientID := uuid.New()

	payments := []*finance.Payment{
		{ClientID: clientID, Amount: 10000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.March, 1)},
		{ClientID: clientID, Amount: 20000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.March, 15)},
		{ClientID: clientID, Amount: 99900, Status: finance.PaymentStatusPending, Date: date(2024, time.March, 20)},
	}
	expenses := []*finance.Expense{
		{ClientID: clientID, Amount: 5000, Status: finance.ExpenseStatusRejected, Date: date(2024, time.March, 10)},
	}

	got := finance.ComputeSummary(clientID, payments, expenses, nil)

	assert.Equal(t, int64(30000), got.TotalRevenue)
	assert.Equal(t, int64(0), got.TotalExpenses)
	assert.Equal(t, int64(30000), got.NetProfit)
	assert.InDelta(t, 100.0, got.ProfitMargin, 0.001)
}

func TestComputeSummary_NetProfitIsExact(t *testing.T) {
	clientID := uuid.New()

	payments := []*finance.Payment{
		{ClientID: clientID, Amount: 123457, Status: finance.PaymentStatusCompleted, Date: date(2024, time.January, 3)},
	}
	expenses := []*finance.Expense{
		{ClientID: clientID, Amount: 23456, Status: finance.ExpenseStatusApproved, Date: date(2024, time.January, 5)},
		{ClientID: clientID, Amount: 1, Status: finance.ExpenseStatusApproved, Date: date(2024, time.January, 6)},
	}

	got := finance.ComputeSummary(clientID, payments, expenses, nil)

	assert.Equal(t, got.TotalRevenue-got.TotalExpenses, got.NetProfit)
	assert.Equal(t, int64(100000), got.NetProfit)
}

func TestComputeSummary_BudgetUtilization(t *testing.T) {
	clientID := uuid.New()

	expenses := []*finance.Expense{
		{ClientID: clientID, Amount: 10000, Status: finance.ExpenseStatusApproved, Date: date(2024, time.May, 1)},
	}

	t.Run("GuardedWhenNoBudget", func(t *testing.T) {
		got := finance.ComputeSummary(clientID, nil, expenses, nil)
		assert.Zero(t, got.BudgetUtilization)
	})

	t.Run("PercentageOfTotalBudget", func(t *testing.T) {
		budgets := []*finance.Budget{
			{ClientID: clientID, Amount: 20000},
			{ClientID: clientID, Amount: 20000},
		}

		got := finance.ComputeSummary(clientID, nil, expenses, budgets)
		assert.InDelta(t, 25.0, got.BudgetUtilization, 0.001)
	})
}

func TestComputeSummary_AvgMonthlyRevenue(t *testing.T) {
	clientID := uuid.New()

	t.Run("SinglePaymentSpansOneMonth", func(t *testing.T) {
		payments := []*finance.Payment{
			{ClientID: clientID, Amount: 30000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.June, 10)},
		}

		got := finance.ComputeSummary(clientID, payments, nil, nil)
		assert.Equal(t, int64(30000), got.AvgMonthlyRevenue)
	})

	t.Run("SpanIsInclusiveOfBothEnds", func(t *testing.T) {
		// January through March is a three-month span.
		payments := []*finance.Payment{
			{ClientID: clientID, Amount: 30000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.January, 31)},
			{ClientID: clientID, Amount: 60000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.March, 1)},
		}

		got := finance.ComputeSummary(clientID, payments, nil, nil)
		assert.Equal(t, int64(30000), got.AvgMonthlyRevenue)
	})

	t.Run("YearBoundary", func(t *testing.T) {
		payments := []*finance.Payment{
			{ClientID: clientID, Amount: 20000, Status: finance.PaymentStatusCompleted, Date: date(2023, time.December, 15)},
			{ClientID: clientID, Amount: 20000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.January, 15)},
		}

		got := finance.ComputeSummary(clientID, payments, nil, nil)
		assert.Equal(t, int64(20000), got.AvgMonthlyRevenue)
	})

	t.Run("PendingPaymentsDoNotExtendTheSpan", func(t *testing.T) {
		payments := []*finance.Payment{
			{ClientID: clientID, Amount: 10000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.April, 1)},
			{ClientID: clientID, Amount: 99999, Status: finance.PaymentStatusPending, Date: date(2023, time.April, 1)},
		}

		got := finance.ComputeSummary(clientID, payments, nil, nil)
		assert.Equal(t, int64(10000), got.AvgMonthlyRevenue)
	})
}

func TestComputeSummary_Idempotent(t *testing.T) {
	clientID := uuid.New()

	payments := []*finance.Payment{
		{ClientID: clientID, Amount: 10000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.February, 2)},
		{ClientID: clientID, Amount: 20000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.April, 20)},
	}
	expenses := []*finance.Expense{
		{ClientID: clientID, Amount: 7500, Status: finance.ExpenseStatusApproved, Date: date(2024, time.March, 3)},
	}
	budgets := []*finance.Budget{
		{ClientID: clientID, Amount: 15000},
	}

	first := finance.ComputeSummary(clientID, payments, expenses, budgets)
	second := finance.ComputeSummary(clientID, payments, expenses, budgets)

	assert.Equal(t, first, second)
}

func TestComputeSummary_RejectedExpensesExcluded(t *testing.T) {
	// $100 and $200 completed payments plus one rejected $50 expense.
	clientID := uuid.New()

	payments := []*finance.Payment{
		{ClientID: clientID, Amount: 10000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.July, 1)},
		{ClientID: clientID, Amount: 20000, Status: finance.PaymentStatusCompleted, Date: date(2024, time.July, 15)},
	}
	expenses := []*finance.Expense{
		{ClientID: clientID, Amount: 5000, Status: finance.ExpenseStatusRejected, Date: date(2024, time.July, 10)},
	}

	got := finance.ComputeSummary(clientID, payments, expenses, nil)

	assert.Equal(t, int64(30000), got.TotalRevenue)
	assert.Equal(t, int64(0), got.TotalExpenses)
	assert.Equal(t, int64(30000), got.NetProfit)
}
