package analytics_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomvds/opsdesk/internal/analytics"
	"github.com/tomvds/opsdesk/internal/client"
	"github.com/tomvds/opsdesk/internal/schedule"
)

var now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func closedClient(value int64, closedAt time.Time) *client.Client {
	created := closedAt.AddDate(0, 0, -30)

	return &client.Client{
		ID:        uuid.New(),
		Company:   "Closed Co",
		Stage:     client.StageClosed,
		DealValue: value,
		ClosedAt:  &closedAt,
		CreatedAt: created,
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	got := analytics.Build(analytics.Input{}, now)

	assert.Zero(t, got.TotalClients)
	assert.Zero(t, got.ConversionRate)
	assert.Empty(t, got.ClientsByStage)
	assert.Zero(t, got.TotalRevenue)
	assert.Zero(t, got.AvgDealValue)
	assert.Zero(t, got.SalesVelocity)
	assert.Zero(t, got.Forecast)
	// The series is zero-filled, never shortened.
	assert.Len(t, got.MonthlyRevenue, 6)
}

func TestBuild_MonthlySeriesAlwaysSixEntries(t *testing.T) {
	tests := []struct {
		name    string
		clients []*client.Client
	}{
		{name: "NoDeals", clients: nil},
		{name: "OneDeal", clients: []*client.Client{closedClient(10000, now.AddDate(0, -1, 0))}},
		{
			name: "DealOutsideWindow",
			clients: []*client.Client{
				closedClient(10000, now.AddDate(-1, 0, 0)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.Build(analytics.Input{Clients: tt.clients}, now)

			require.Len(t, got.MonthlyRevenue, 6)

			// Series runs oldest to newest, ending on the current month.
			last := got.MonthlyRevenue[5].Month
			assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), last)
			assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), got.MonthlyRevenue[0].Month)
		})
	}
}

func TestBuild_RevenueAndConversion(t *testing.T) {
	clients := []*client.Client{
		closedClient(100000, now.AddDate(0, -1, -3)),
		closedClient(300000, now.AddDate(0, 0, -3)),
		{ID: uuid.New(), Stage: client.StageProspect, DealValue: 50000, CreatedAt: now},
		{ID: uuid.New(), Stage: client.StageLost, DealValue: 75000, CreatedAt: now},
	}

	got := analytics.Build(analytics.Input{Clients: clients}, now)

	assert.Equal(t, int64(400000), got.TotalRevenue)
	assert.Equal(t, 4, got.TotalClients)
	assert.Equal(t, 1, got.ActiveDeals)
	assert.InDelta(t, 50.0, got.ConversionRate, 0.001)
	assert.Equal(t, int64(200000), got.AvgDealValue)
	assert.Equal(t, int64(50000), got.PipelineValue)
	// Forecast scales the open pipeline by the conversion rate.
	assert.Equal(t, int64(25000), got.Forecast)
}

func TestBuild_MoMGrowth(t *testing.T) {
	clients := []*client.Client{
		closedClient(100000, now.AddDate(0, -1, 0)), // May
		closedClient(150000, now.AddDate(0, 0, -1)), // June
	}

	got := analytics.Build(analytics.Input{Clients: clients}, now)

	assert.InDelta(t, 50.0, got.MoMGrowth, 0.001)
}

func TestBuild_MoMGrowthGuardedWhenPreviousMonthIsZero(t *testing.T) {
	clients := []*client.Client{
		closedClient(150000, now.AddDate(0, 0, -1)),
	}

	got := analytics.Build(analytics.Input{Clients: clients}, now)

	assert.Zero(t, got.MoMGrowth)
}

func TestBuild_StageDistributionInFunnelOrder(t *testing.T) {
	clients := []*client.Client{
		{ID: uuid.New(), Stage: client.StageProposal, DealValue: 100},
		{ID: uuid.New(), Stage: client.StageProspect, DealValue: 200},
		{ID: uuid.New(), Stage: client.StageProspect, DealValue: 300},
	}

	got := analytics.Build(analytics.Input{Clients: clients}, now)

	require.Len(t, got.ClientsByStage, 2)
	assert.Equal(t, client.StageProspect, got.ClientsByStage[0].Stage)
	assert.Equal(t, 2, got.ClientsByStage[0].Count)
	assert.Equal(t, int64(500), got.ClientsByStage[0].Value)
	assert.Equal(t, client.StageProposal, got.ClientsByStage[1].Stage)
}

func TestBuild_TopClientsCappedAtFive(t *testing.T) {
	var clients []*client.Client

	for i := range 8 {
		clients = append(clients, &client.Client{
			ID:        uuid.New(),
			Company:   "Co",
			Stage:     client.StageConnected,
			DealValue: int64(i+1) * 1000,
		})
	}

	got := analytics.Build(analytics.Input{Clients: clients}, now)

	require.Len(t, got.TopClients, 5)
	assert.Equal(t, int64(8000), got.TopClients[0].DealValue)
	assert.Equal(t, int64(4000), got.TopClients[4].DealValue)
}

func TestBuild_ActivityCounts(t *testing.T) {
	overdue := now.AddDate(0, 0, -2)
	completedRecently := now.AddDate(0, 0, -5)
	completedLongAgo := now.AddDate(0, 0, -90)

	tasks := []*schedule.Task{
		{ID: uuid.New(), Status: schedule.TaskStatusTodo, DueDate: &overdue},
		{ID: uuid.New(), Status: schedule.TaskStatusInProgress},
		{ID: uuid.New(), Status: schedule.TaskStatusDone, CompletedAt: &completedRecently},
		{ID: uuid.New(), Status: schedule.TaskStatusDone, CompletedAt: &completedLongAgo},
	}

	events := []*schedule.Event{
		{ID: uuid.New(), StartsAt: now.AddDate(0, 0, 3)},
		{ID: uuid.New(), StartsAt: now.AddDate(0, 0, -3)},
		{ID: uuid.New(), StartsAt: now.AddDate(0, 0, 300)}, // Beyond the window
	}

	got := analytics.Build(analytics.Input{Tasks: tasks, Events: events, WindowDays: 30}, now)

	assert.Equal(t, 2, got.TasksOpen)
	assert.Equal(t, 1, got.TasksOverdue)
	assert.Equal(t, 1, got.TasksCompleted)
	assert.Equal(t, 1, got.EventsUpcoming)
	assert.Equal(t, 1, got.EventsHeld)
}

func TestBuild_SalesVelocityGuardedWithoutCycleData(t *testing.T) {
	clients := []*client.Client{
		{ID: uuid.New(), Stage: client.StageProposal, DealValue: 10000},
	}

	got := analytics.Build(analytics.Input{Clients: clients}, now)

	assert.Zero(t, got.AvgDealCycleDays)
	assert.Zero(t, got.SalesVelocity)
}

func TestBuild_DealCycle(t *testing.T) {
	closedAt := now.AddDate(0, 0, -10)
	c := closedClient(100000, closedAt) // Created 30 days before close

	got := analytics.Build(analytics.Input{Clients: []*client.Client{c}}, now)

	assert.InDelta(t, 30.0, got.AvgDealCycleDays, 0.001)
	assert.NotZero(t, got.AvgDealValue)
}

func TestBuild_Recommendations(t *testing.T) {
	t.Run("EmptyPipeline", func(t *testing.T) {
		got := analytics.Build(analytics.Input{}, now)
		require.Len(t, got.Recommendations, 1)
		assert.Contains(t, got.Recommendations[0], "first client")
	})

	t.Run("OverdueTasks", func(t *testing.T) {
		overdue := now.AddDate(0, 0, -1)
		in := analytics.Input{
			Clients: []*client.Client{{ID: uuid.New(), Stage: client.StageProposal}},
			Tasks: []*schedule.Task{
				{ID: uuid.New(), Status: schedule.TaskStatusTodo, DueDate: &overdue},
			},
		}

		got := analytics.Build(in, now)
		assert.Contains(t, got.Recommendations, "1 overdue tasks need attention.")
	})
}

func TestBuild_Deterministic(t *testing.T) {
	clients := []*client.Client{
		closedClient(100000, now.AddDate(0, -2, 0)),
		{ID: uuid.New(), Stage: client.StageNegotiation, DealValue: 40000, CreatedAt: now},
	}

	first := analytics.Build(analytics.Input{Clients: clients}, now)
	second := analytics.Build(analytics.Input{Clients: clients}, now)

	assert.Equal(t, first, second)
}

func TestBuild_NilEntriesIgnored(t *testing.T) {
	in := analytics.Input{
		Clients: []*client.Client{nil, {ID: uuid.New(), Stage: client.StageProspect}},
		Tasks:   []*schedule.Task{nil},
		Events:  []*schedule.Event{nil},
	}

	got := analytics.Build(in, now)

	assert.Equal(t, 2, got.TotalClients) // len() counts the slot; aggregation skips it
	assert.Len(t, got.ClientsByStage, 1)
}
