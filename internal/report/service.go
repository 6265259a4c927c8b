package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/client"
	"github.com/tomvds/opsdesk/internal/finance"
)

// recentLimit caps how many payment and expense lines a digest carries.
const recentLimit = 5

// Service renders plain-text financial digests suitable for pasting into
// an email or a chat message.
type Service struct {
	clients *client.Service
	finance *finance.Service
}

func NewService(clients *client.Service, fin *finance.Service) *Service {
	return &Service{
		clients: clients,
		finance: fin,
	}
}

// ClientDigest builds a digest for a single client: the derived summary
// figures followed by the most recent payments and expenses.
func (s *Service) ClientDigest(ctx context.Context, clientID uuid.UUID) (string, error) {
	c, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return "", fmt.Errorf("fetching client: %w", err)
	}

	summary, err := s.finance.GetSummary(ctx, clientID)
	if errors.Is(err, finance.ErrSummaryNotFound) {
		// No finance rows yet; report zeroes rather than failing.
		summary = &finance.Summary{ClientID: clientID}
	} else if err != nil {
		return "", fmt.Errorf("fetching summary: %w", err)
	}

	payments, err := s.finance.ListPayments(ctx, finance.PaymentFilter{ClientID: &clientID})
	if err != nil {
		return "", fmt.Errorf("listing payments: %w", err)
	}

	expenses, err := s.finance.ListExpenses(ctx, finance.ExpenseFilter{ClientID: &clientID})
	if err != nil {
		return "", fmt.Errorf("listing expenses: %w", err)
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Financial digest: %s\n", c.Company)
	fmt.Fprintf(&sb, "Stage: %s\n\n", c.Stage)

	fmt.Fprintf(&sb, "Total revenue:       %s\n", formatAmount(summary.TotalRevenue))
	fmt.Fprintf(&sb, "Total expenses:      %s\n", formatAmount(summary.TotalExpenses))
	fmt.Fprintf(&sb, "Net profit:          %s\n", formatAmount(summary.NetProfit))
	fmt.Fprintf(&sb, "Profit margin:       %.1f%%\n", summary.ProfitMargin)
	fmt.Fprintf(&sb, "Budget utilization:  %.1f%%\n", summary.BudgetUtilization)
	fmt.Fprintf(&sb, "Avg monthly revenue: %s\n", formatAmount(summary.AvgMonthlyRevenue))

	if len(payments) > 0 {
		sb.WriteString("\nRecent payments:\n")

		for _, p := range tail(payments, recentLimit) {
			fmt.Fprintf(&sb, "* %s | %s | +%s | %s\n",
				p.Date.Format("2006-01-02"), p.Reference, formatAmount(p.Amount), p.Status)
		}
	}

	if len(expenses) > 0 {
		sb.WriteString("\nRecent expenses:\n")

		for _, e := range tail(expenses, recentLimit) {
			fmt.Fprintf(&sb, "* %s | %s | -%s | %s\n",
				e.Date.Format("2006-01-02"), e.Description, formatAmount(e.Amount), e.Status)
		}
	}

	return sb.String(), nil
}

// tail returns the last n elements. Lists come back ordered by date
// ascending, so the tail is the most recent slice of activity.
func tail[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}

	return items[len(items)-n:]
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("%.2f €", float64(cents)/100.0)
}
