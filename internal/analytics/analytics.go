// Package analytics derives the dashboard view-model from raw client,
// task and event collections. Everything here is pure, synchronous and
// deterministic for a given input and reference time; all divisions
// guard zero denominators by yielding 0 instead of failing.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/client"
	"github.com/tomvds/opsdesk/internal/schedule"
)

const (
	defaultWindowDays = 30
	revenueMonths     = 6
	topClientLimit    = 5
)

// Input holds the raw collections the dashboard is derived from. Nil
// slices are treated as empty.
type Input struct {
	Clients []*client.Client
	Tasks   []*schedule.Task
	Events  []*schedule.Event

	// WindowDays is the lookback window for activity counts.
	// Defaults to 30 when zero or negative.
	WindowDays int
}

// StageMetric is the count and combined deal value of one pipeline stage.
type StageMetric struct {
	Stage client.Stage
	Count int
	Value int64
}

// MonthRevenue is one entry of the revenue series. Month is the first
// day of the calendar month.
type MonthRevenue struct {
	Month   time.Time
	Revenue int64
}

// TopClient is a leaderboard entry.
type TopClient struct {
	ID        uuid.UUID
	Company   string
	Stage     client.Stage
	DealValue int64
}

// Dashboard is the fully derived view-model.
type Dashboard struct {
	TotalRevenue   int64
	TotalClients   int
	ActiveDeals    int
	ConversionRate float64 // Percentage of all clients that closed
	AvgDealValue   int64   // Cents, over closed deals
	MoMGrowth      float64 // Revenue growth vs the previous month, percent

	ClientsByStage []StageMetric
	MonthlyRevenue []MonthRevenue // Always exactly revenueMonths entries
	TopClients     []TopClient

	TasksCompleted int // Completed inside the lookback window
	TasksOpen      int
	TasksOverdue   int
	EventsHeld     int // Started inside the lookback window
	EventsUpcoming int // Starting within the next window

	AvgDealCycleDays float64 // Mean days from creation to close
	SalesVelocity    int64   // Estimated cents of revenue per day
	PipelineValue    int64   // Combined value of active deals
	Forecast         int64   // PipelineValue scaled by conversion rate

	Recommendations []string
}

// Build computes the dashboard from the input at the given reference
// time. Single pass per collection; no I/O.
func Build(in Input, now time.Time) *Dashboard {
	windowDays := in.WindowDays
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}

	d := &Dashboard{
		TotalClients:    len(in.Clients),
		ClientsByStage:  []StageMetric{},
		Recommendations: []string{},
	}

	stageCounts := make(map[client.Stage]*StageMetric)

	var (
		closedCount    int
		cycleDaysTotal float64
		cycleSamples   int
	)

	for _, c := range in.Clients {
		if c == nil {
			continue
		}

		m := stageCounts[c.Stage]
		if m == nil {
			m = &StageMetric{Stage: c.Stage}
			stageCounts[c.Stage] = m
		}

		m.Count++
		m.Value += c.DealValue

		if c.Stage.Active() {
			d.ActiveDeals++
			d.PipelineValue += c.DealValue
		}

		if c.Stage == client.StageClosed {
			closedCount++
			d.TotalRevenue += c.DealValue

			if c.ClosedAt != nil {
				cycleDaysTotal += c.ClosedAt.Sub(c.CreatedAt).Hours() / 24
				cycleSamples++
			}
		}
	}

	// Stage distribution in funnel order; stages nobody occupies are
	// omitted so an empty client set yields an empty slice.
	for _, stage := range client.Stages {
		if m, ok := stageCounts[stage]; ok {
			d.ClientsByStage = append(d.ClientsByStage, *m)
		}
	}

	if d.TotalClients > 0 {
		d.ConversionRate = float64(closedCount) / float64(d.TotalClients) * 100
	}

	if closedCount > 0 {
		d.AvgDealValue = d.TotalRevenue / int64(closedCount)
	}

	if cycleSamples > 0 {
		d.AvgDealCycleDays = cycleDaysTotal / float64(cycleSamples)
	}

	d.MonthlyRevenue = monthlySeries(in.Clients, now)
	d.MoMGrowth = momGrowth(d.MonthlyRevenue)
	d.TopClients = topClients(in.Clients)

	windowStart := now.AddDate(0, 0, -windowDays)
	windowEnd := now.AddDate(0, 0, windowDays)

	for _, t := range in.Tasks {
		if t == nil {
			continue
		}

		if t.Status != schedule.TaskStatusDone {
			d.TasksOpen++
		}

		if t.Overdue(now) {
			d.TasksOverdue++
		}

		if t.CompletedAt != nil && t.CompletedAt.After(windowStart) && !t.CompletedAt.After(now) {
			d.TasksCompleted++
		}
	}

	for _, e := range in.Events {
		if e == nil {
			continue
		}

		switch {
		case e.StartsAt.After(now) && !e.StartsAt.After(windowEnd):
			d.EventsUpcoming++
		case !e.StartsAt.Before(windowStart) && !e.StartsAt.After(now):
			d.EventsHeld++
		}
	}

	d.SalesVelocity = salesVelocity(d.ActiveDeals, d.ConversionRate, d.AvgDealValue, d.AvgDealCycleDays)
	d.Forecast = int64(float64(d.PipelineValue) * d.ConversionRate / 100)
	d.Recommendations = recommendations(d, closedCount)

	return d
}

// monthlySeries builds the closed-revenue series for the last
// revenueMonths calendar months, oldest first. The series always has
// exactly revenueMonths entries, zero-filled where nothing closed.
func monthlySeries(clients []*client.Client, now time.Time) []MonthRevenue {
	series := make([]MonthRevenue, revenueMonths)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	index := make(map[time.Time]int, revenueMonths)

	for i := range series {
		month := current.AddDate(0, i-revenueMonths+1, 0)
		series[i] = MonthRevenue{Month: month}
		index[month] = i
	}

	for _, c := range clients {
		if c == nil || c.Stage != client.StageClosed || c.ClosedAt == nil {
			continue
		}

		month := time.Date(c.ClosedAt.Year(), c.ClosedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		if i, ok := index[month]; ok {
			series[i].Revenue += c.DealValue
		}
	}

	return series
}

// momGrowth compares the latest month of the series to the one before it.
func momGrowth(series []MonthRevenue) float64 {
	if len(series) < 2 {
		return 0
	}

	previous := series[len(series)-2].Revenue
	latest := series[len(series)-1].Revenue

	if previous == 0 {
		return 0
	}

	return float64(latest-previous) / float64(previous) * 100
}

// topClients returns up to topClientLimit clients ranked by deal value.
func topClients(clients []*client.Client) []TopClient {
	ranked := make([]TopClient, 0, len(clients))

	for _, c := range clients {
		if c == nil {
			continue
		}

		ranked = append(ranked, TopClient{
			ID:        c.ID,
			Company:   c.Company,
			Stage:     c.Stage,
			DealValue: c.DealValue,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DealValue > ranked[j].DealValue
	})

	if len(ranked) > topClientLimit {
		ranked = ranked[:topClientLimit]
	}

	return ranked
}

// salesVelocity estimates daily revenue throughput from the classic
// four-factor formula: open deals x win rate x average value / cycle days.
func salesVelocity(activeDeals int, conversionRate float64, avgDealValue int64, cycleDays float64) int64 {
	if cycleDays == 0 {
		return 0
	}

	return int64(float64(activeDeals) * (conversionRate / 100) * float64(avgDealValue) / cycleDays)
}

// recommendations produces short heuristic suggestions from the derived
// numbers. Purely advisory text; thresholds are deliberately coarse.
func recommendations(d *Dashboard, closedCount int) []string {
	recs := []string{}

	if d.TotalClients == 0 {
		return append(recs, "Add your first client to start building the pipeline.")
	}

	if decided := closedCount + stageCount(d.ClientsByStage, client.StageLost); decided > 0 && d.ConversionRate < 20 {
		recs = append(recs, "Conversion rate is below 20%. Review how leads are qualified before they enter the pipeline.")
	}

	if prospects := stageCount(d.ClientsByStage, client.StageProspect); prospects*2 > d.TotalClients {
		recs = append(recs, "Over half the pipeline is still in the prospect stage. Schedule follow-ups to move deals forward.")
	}

	if d.TasksOverdue > 0 {
		recs = append(recs, fmt.Sprintf("%d overdue tasks need attention.", d.TasksOverdue))
	}

	if d.MoMGrowth < 0 {
		recs = append(recs, "Closed revenue declined compared to last month.")
	}

	if d.ActiveDeals == 0 {
		recs = append(recs, "No active deals in the pipeline. Prospecting should be the top priority.")
	}

	return recs
}

func stageCount(metrics []StageMetric, stage client.Stage) int {
	for _, m := range metrics {
		if m.Stage == stage {
			return m.Count
		}
	}

	return 0
}
