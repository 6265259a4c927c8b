package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/analytics"
	"github.com/tomvds/opsdesk/internal/client"
)

type stageMetricResponse struct {
	Stage client.Stage `json:"stage"`
	Count int          `json:"count"`
	Value int64        `json:"value"`
}

type monthRevenueResponse struct {
	Month   time.Time `json:"month"`
	Revenue int64     `json:"revenue"`
}

type topClientResponse struct {
	ID        uuid.UUID    `json:"id"`
	Company   string       `json:"company"`
	Stage     client.Stage `json:"stage"`
	DealValue int64        `json:"deal_value"`
}

type dashboardResponse struct {
	TotalRevenue   int64   `json:"total_revenue"`
	TotalClients   int     `json:"total_clients"`
	ActiveDeals    int     `json:"active_deals"`
	ConversionRate float64 `json:"conversion_rate"`
	AvgDealValue   int64   `json:"avg_deal_value"`
	MoMGrowth      float64 `json:"mom_growth"`

	ClientsByStage []stageMetricResponse  `json:"clients_by_stage"`
	MonthlyRevenue []monthRevenueResponse `json:"monthly_revenue"`
	TopClients     []topClientResponse    `json:"top_clients"`

	TasksCompleted int `json:"tasks_completed"`
	TasksOpen      int `json:"tasks_open"`
	TasksOverdue   int `json:"tasks_overdue"`
	EventsHeld     int `json:"events_held"`
	EventsUpcoming int `json:"events_upcoming"`

	AvgDealCycleDays float64 `json:"avg_deal_cycle_days"`
	SalesVelocity    int64   `json:"sales_velocity"`
	PipelineValue    int64   `json:"pipeline_value"`
	Forecast         int64   `json:"forecast"`

	Recommendations []string `json:"recommendations"`
}

func toResponse(d *analytics.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		TotalRevenue:     d.TotalRevenue,
		TotalClients:     d.TotalClients,
		ActiveDeals:      d.ActiveDeals,
		ConversionRate:   d.ConversionRate,
		AvgDealValue:     d.AvgDealValue,
		MoMGrowth:        d.MoMGrowth,
		TasksCompleted:   d.TasksCompleted,
		TasksOpen:        d.TasksOpen,
		TasksOverdue:     d.TasksOverdue,
		EventsHeld:       d.EventsHeld,
		EventsUpcoming:   d.EventsUpcoming,
		AvgDealCycleDays: d.AvgDealCycleDays,
		SalesVelocity:    d.SalesVelocity,
		PipelineValue:    d.PipelineValue,
		Forecast:         d.Forecast,
		Recommendations:  d.Recommendations,
	}

	resp.ClientsByStage = make([]stageMetricResponse, len(d.ClientsByStage))
	for i, m := range d.ClientsByStage {
		resp.ClientsByStage[i] = stageMetricResponse{Stage: m.Stage, Count: m.Count, Value: m.Value}
	}

	resp.MonthlyRevenue = make([]monthRevenueResponse, len(d.MonthlyRevenue))
	for i, m := range d.MonthlyRevenue {
		resp.MonthlyRevenue[i] = monthRevenueResponse{Month: m.Month, Revenue: m.Revenue}
	}

	resp.TopClients = make([]topClientResponse, len(d.TopClients))
	for i, c := range d.TopClients {
		resp.TopClients[i] = topClientResponse{ID: c.ID, Company: c.Company, Stage: c.Stage, DealValue: c.DealValue}
	}

	return resp
}
