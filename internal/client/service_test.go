package client_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tomvds/opsdesk/internal/client"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params client.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *client.MockRepository)
		wantStage client.Stage
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: client.CreateParams{
					Company:     "Acme Corp",
					ContactName: "Jane Doe",
					Email:       "jane@acme.example",
					Stage:       client.StageProposal,
					DealValue:   250000,
					AssignedTo:  "rita",
				},
			},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *client.Client) error {
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return nil
					})
			},
			wantStage: client.StageProposal,
			wantErr:   false,
		},
		{
			name: "DefaultsToProspect",
			args: args{
				params: client.CreateParams{
					Company: "Nameless LLC",
				},
			},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *client.Client) error {
						c.ID = uuid.New()
						return nil
					})
			},
			wantStage: client.StageProspect,
			wantErr:   false,
		},
		{
			name: "RepoError",
			args: args{
				params: client.CreateParams{
					Company: "Acme Corp",
				},
			},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := client.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := client.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.wantStage, got.Stage)
		})
	}
}

func TestService_UpdateStage_Closed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	svc := client.NewService(repo)

	id := uuid.New()

	repo.EXPECT().
		UpdateStage(gomock.Any(), id, client.StageClosed, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ client.Stage, closedAt *time.Time) error {
			require.NotNil(t, closedAt)
			assert.WithinDuration(t, time.Now(), *closedAt, time.Minute)
			return nil
		})

	require.NoError(t, svc.UpdateStage(context.Background(), id, client.StageClosed))
}

func TestService_UpdateStage_Reopened(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	svc := client.NewService(repo)

	id := uuid.New()

	repo.EXPECT().
		UpdateStage(gomock.Any(), id, client.StageNegotiation, nil).
		Return(nil)

	require.NoError(t, svc.UpdateStage(context.Background(), id, client.StageNegotiation))
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	svc := client.NewService(repo)

	stage := client.StageClosed
	filter := client.ListFilter{Stage: &stage}

	repo.EXPECT().
		ListClients(gomock.Any(), filter).
		Return([]*client.Client{
			{ID: uuid.New(), Stage: client.StageClosed},
		}, nil)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStage_Active(t *testing.T) {
	assert.True(t, client.StageProspect.Active())
	assert.True(t, client.StageNegotiation.Active())
	assert.False(t, client.StageClosed.Active())
	assert.False(t, client.StageLost.Active())
}
