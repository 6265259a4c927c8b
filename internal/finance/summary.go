package finance

import (
	"time"

	"github.com/google/uuid"
)

// ComputeSummary derives the financial summary for a client from its
// current payments, expenses and budgets. It is a pure function of its
// inputs: recomputing with unchanged rows yields an identical summary,
// so rerunning after a failed upsert is always safe.
//
// Only completed payments count as revenue and only approved expenses
// count as spend; everything else is ignored.
func ComputeSummary(clientID uuid.UUID, payments []*Payment, expenses []*Expense, budgets []*Budget) *Summary {
	s := &Summary{ClientID: clientID}

	var minDate, maxDate time.Time

	completed := 0

	for _, p := range payments {
		if p.Status != PaymentStatusCompleted {
			continue
		}

		s.TotalRevenue += p.Amount

		if completed == 0 || p.Date.Before(minDate) {
			minDate = p.Date
		}

		if completed == 0 || p.Date.After(maxDate) {
			maxDate = p.Date
		}

		completed++
	}

	for _, e := range expenses {
		if e.Status != ExpenseStatusApproved {
			continue
		}

		s.TotalExpenses += e.Amount
	}

	for _, b := range budgets {
		s.TotalBudget += b.Amount
	}

	s.NetProfit = s.TotalRevenue - s.TotalExpenses

	if s.TotalRevenue > 0 {
		s.ProfitMargin = float64(s.NetProfit) / float64(s.TotalRevenue) * 100
	}

	if s.TotalBudget > 0 {
		s.BudgetUtilization = float64(s.TotalExpenses) / float64(s.TotalBudget) * 100
	}

	if completed > 0 {
		s.AvgMonthlyRevenue = s.TotalRevenue / monthSpan(minDate, maxDate)
	}

	return s
}

// monthSpan counts the calendar months touched by the range, inclusive.
// A single payment spans one month, so its average equals total revenue.
func monthSpan(minDate, maxDate time.Time) int64 {
	span := (maxDate.Year()-minDate.Year())*12 + int(maxDate.Month()) - int(minDate.Month()) + 1
	if span < 1 {
		span = 1
	}

	return int64(span)
}
