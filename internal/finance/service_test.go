package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tomvds/opsdesk/internal/finance"
)

// expectRecompute wires the list+upsert calls the service issues after a
// mutation. The captured summary is returned for further assertions.
func expectRecompute(m *finance.MockRepository, clientID uuid.UUID, captured **finance.Summary) {
	m.EXPECT().ListPayments(gomock.Any(), finance.PaymentFilter{ClientID: &clientID}).Return(nil, nil)
	m.EXPECT().ListExpenses(gomock.Any(), finance.ExpenseFilter{ClientID: &clientID}).Return(nil, nil)
	m.EXPECT().ListBudgets(gomock.Any(), finance.BudgetFilter{ClientID: &clientID}).Return(nil, nil)
	m.EXPECT().UpsertSummary(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *finance.Summary) error {
			if captured != nil {
				*captured = s
			}
			return nil
		})
}

func TestService_CreatePayment_TriggersRecompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	svc := finance.NewService(repo)

	clientID := uuid.New()

	repo.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *finance.Payment) error {
			p.ID = uuid.New()
			p.CreatedAt = time.Now()
			return nil
		})

	var captured *finance.Summary

	expectRecompute(repo, clientID, &captured)

	p, err := svc.CreatePayment(context.Background(), finance.CreatePaymentParams{
		ClientID: clientID,
		Amount:   10000,
		Status:   finance.PaymentStatusCompleted,
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	require.NotNil(t, captured)
	assert.Equal(t, clientID, captured.ClientID)
}

func TestService_CreatePayment_RecomputeFailureDoesNotFailWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	svc := finance.NewService(repo)

	clientID := uuid.New()

	repo.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *finance.Payment) error {
			p.ID = uuid.New()
			return nil
		})

	// The summary rebuild fails at the first read; the payment create
	// must still succeed with a stale summary left behind.
	repo.EXPECT().
		ListPayments(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	p, err := svc.CreatePayment(context.Background(), finance.CreatePaymentParams{
		ClientID: clientID,
		Amount:   5000,
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
}

func TestService_CreatePayment_DefaultsToPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	svc := finance.NewService(repo)

	clientID := uuid.New()

	repo.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *finance.Payment) error {
			assert.Equal(t, finance.PaymentStatusPending, p.Status)
			p.ID = uuid.New()
			return nil
		})
	expectRecompute(repo, clientID, nil)

	_, err := svc.CreatePayment(context.Background(), finance.CreatePaymentParams{
		ClientID: clientID,
		Amount:   100,
		Date:     time.Now(),
	})
	require.NoError(t, err)
}

func TestService_UpdateExpenseStatus_TriggersRecompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	svc := finance.NewService(repo)

	clientID := uuid.New()
	expenseID := uuid.New()

	repo.EXPECT().
		GetExpense(gomock.Any(), expenseID).
		Return(&finance.Expense{ID: expenseID, ClientID: clientID, Status: finance.ExpenseStatusPending}, nil)
	repo.EXPECT().
		UpdateExpenseStatus(gomock.Any(), expenseID, finance.ExpenseStatusApproved).
		Return(nil)
	expectRecompute(repo, clientID, nil)

	require.NoError(t, svc.UpdateExpenseStatus(context.Background(), expenseID, finance.ExpenseStatusApproved))
}

func TestService_DeletePayment_TriggersRecompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	svc := finance.NewService(repo)

	clientID := uuid.New()
	paymentID := uuid.New()

	repo.EXPECT().
		GetPayment(gomock.Any(), paymentID).
		Return(&finance.Payment{ID: paymentID, ClientID: clientID}, nil)
	repo.EXPECT().
		DeletePayment(gomock.Any(), paymentID).
		Return(nil)
	expectRecompute(repo, clientID, nil)

	require.NoError(t, svc.DeletePayment(context.Background(), paymentID))
}

func TestService_DeletePayment_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	svc := finance.NewService(repo)

	paymentID := uuid.New()

	repo.EXPECT().
		GetPayment(gomock.Any(), paymentID).
		Return(nil, finance.ErrPaymentNotFound)

	err := svc.DeletePayment(context.Background(), paymentID)
	assert.ErrorIs(t, err, finance.ErrPaymentNotFound)
}

func TestService_CreatePayments_RecomputesEachClientOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	svc := finance.NewService(repo)

	clientA := uuid.New()
	clientB := uuid.New()

	repo.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *finance.Payment) error {
			p.ID = uuid.New()
			return nil
		}).
		Times(3)

	// One recompute per distinct client, not per payment.
	recomputes := 0

	repo.EXPECT().ListPayments(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	repo.EXPECT().ListExpenses(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	repo.EXPECT().ListBudgets(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	repo.EXPECT().UpsertSummary(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *finance.Summary) error {
			recomputes++
			return nil
		}).
		Times(2)

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	params := []finance.CreatePaymentParams{
		{ClientID: clientA, Amount: 100, Status: finance.PaymentStatusCompleted, Date: date},
		{ClientID: clientA, Amount: 200, Status: finance.PaymentStatusCompleted, Date: date},
		{ClientID: clientB, Amount: 300, Status: finance.PaymentStatusCompleted, Date: date},
	}

	payments, err := svc.CreatePayments(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, payments, 3)
	assert.Equal(t, 2, recomputes)
}

func TestService_Recompute_ReadOnlyForConsumers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	svc := finance.NewService(repo)

	clientID := uuid.New()
	want := &finance.Summary{ClientID: clientID, TotalRevenue: 30000}

	repo.EXPECT().GetSummary(gomock.Any(), clientID).Return(want, nil)

	got, err := svc.GetSummary(context.Background(), clientID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
