package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tomvds/opsdesk/internal/client"
	"github.com/tomvds/opsdesk/internal/finance"
)

func TestService_ClientDigest(t *testing.T) {
	ctrl := gomock.NewController(t)
	clientID := uuid.New()

	clientRepo := client.NewMockRepository(ctrl)
	clientRepo.EXPECT().GetClient(gomock.Any(), clientID).Return(&client.Client{
		ID:      clientID,
		Company: "Acme Corp",
		Stage:   client.StageNegotiation,
	}, nil)

	finRepo := finance.NewMockRepository(ctrl)
	finRepo.EXPECT().GetSummary(gomock.Any(), clientID).Return(&finance.Summary{
		ClientID:          clientID,
		TotalRevenue:      125000,
		TotalExpenses:     40000,
		NetProfit:         85000,
		ProfitMargin:      68.0,
		BudgetUtilization: 40.0,
		AvgMonthlyRevenue: 62500,
	}, nil)
	finRepo.EXPECT().ListPayments(gomock.Any(), gomock.Any()).Return([]*finance.Payment{
		{
			Reference: "Invoice 2024-001",
			Amount:    125000,
			Status:    finance.PaymentStatusCompleted,
			Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}, nil)
	finRepo.EXPECT().ListExpenses(gomock.Any(), gomock.Any()).Return([]*finance.Expense{
		{
			Description: "Ad campaign",
			Amount:      40000,
			Status:      finance.ExpenseStatusApproved,
			Date:        time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
	}, nil)

	svc := NewService(client.NewService(clientRepo), finance.NewService(finRepo))

	digest, err := svc.ClientDigest(context.Background(), clientID)
	require.NoError(t, err)

	assert.Contains(t, digest, "Financial digest: Acme Corp")
	assert.Contains(t, digest, "Stage: negotiation")
	assert.Contains(t, digest, "Total revenue:       1250.00 €")
	assert.Contains(t, digest, "Net profit:          850.00 €")
	assert.Contains(t, digest, "Profit margin:       68.0%")
	assert.Contains(t, digest, "* 2024-01-15 | Invoice 2024-001 | +1250.00 € | completed")
	assert.Contains(t, digest, "* 2024-01-20 | Ad campaign | -400.00 € | approved")
}

func TestService_ClientDigest_NoSummaryYet(t *testing.T) {
	ctrl := gomock.NewController(t)
	clientID := uuid.New()

	clientRepo := client.NewMockRepository(ctrl)
	clientRepo.EXPECT().GetClient(gomock.Any(), clientID).Return(&client.Client{
		ID:      clientID,
		Company: "Fresh Prospect BV",
		Stage:   client.StageProspect,
	}, nil)

	finRepo := finance.NewMockRepository(ctrl)
	finRepo.EXPECT().GetSummary(gomock.Any(), clientID).Return(nil, finance.ErrSummaryNotFound)
	finRepo.EXPECT().ListPayments(gomock.Any(), gomock.Any()).Return(nil, nil)
	finRepo.EXPECT().ListExpenses(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := NewService(client.NewService(clientRepo), finance.NewService(finRepo))

	digest, err := svc.ClientDigest(context.Background(), clientID)
	require.NoError(t, err)

	assert.Contains(t, digest, "Total revenue:       0.00 €")
	assert.NotContains(t, digest, "Recent payments")
	assert.NotContains(t, digest, "Recent expenses")
}

func TestService_ClientDigest_ClientNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	clientID := uuid.New()

	clientRepo := client.NewMockRepository(ctrl)
	clientRepo.EXPECT().GetClient(gomock.Any(), clientID).Return(nil, client.ErrNotFound)

	svc := NewService(client.NewService(clientRepo), finance.NewService(finance.NewMockRepository(ctrl)))

	_, err := svc.ClientDigest(context.Background(), clientID)
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestTail(t *testing.T) {
	assert.Equal(t, []int{3, 4, 5}, tail([]int{1, 2, 3, 4, 5}, 3))
	assert.Equal(t, []int{1, 2}, tail([]int{1, 2}, 5))
}
