package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/tomvds/opsdesk/internal/auth"
	"github.com/tomvds/opsdesk/internal/chat"
	chatStore "github.com/tomvds/opsdesk/internal/chat/store"
	"github.com/tomvds/opsdesk/internal/client"
	clientStore "github.com/tomvds/opsdesk/internal/client/store"
	"github.com/tomvds/opsdesk/internal/config"
	"github.com/tomvds/opsdesk/internal/database"
	"github.com/tomvds/opsdesk/internal/finance"
	financeStore "github.com/tomvds/opsdesk/internal/finance/store"
	opsdeskHttp "github.com/tomvds/opsdesk/internal/http"
	analyticsHandler "github.com/tomvds/opsdesk/internal/http/analytics"
	chatHandler "github.com/tomvds/opsdesk/internal/http/chat"
	clientHandler "github.com/tomvds/opsdesk/internal/http/client"
	financeHandler "github.com/tomvds/opsdesk/internal/http/finance"
	importHandler "github.com/tomvds/opsdesk/internal/http/importcsv"
	journalHandler "github.com/tomvds/opsdesk/internal/http/journal"
	reportHandler "github.com/tomvds/opsdesk/internal/http/report"
	scheduleHandler "github.com/tomvds/opsdesk/internal/http/schedule"
	"github.com/tomvds/opsdesk/internal/importer"
	"github.com/tomvds/opsdesk/internal/journal"
	journalStore "github.com/tomvds/opsdesk/internal/journal/store"
	"github.com/tomvds/opsdesk/internal/report"
	"github.com/tomvds/opsdesk/internal/schedule"
	scheduleStore "github.com/tomvds/opsdesk/internal/schedule/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	hub := chat.NewHub()

	var (
		clientService   = client.NewService(clientStore.New(db))
		financeService  = finance.NewService(financeStore.New(db))
		scheduleService = schedule.NewService(scheduleStore.New(db))
		journalService  = journal.NewService(journalStore.New(db))
		chatService     = chat.NewService(chatStore.New(db), hub, cfg.Chat.HistoryLimit)
		importService   = importer.NewService()
		reportService   = report.NewService(clientService, financeService)
	)

	var (
		clientH    = clientHandler.NewHandler(clientService)
		financeH   = financeHandler.NewHandler(financeService)
		analyticsH = analyticsHandler.NewHandler(clientService, scheduleService)
		scheduleH  = scheduleHandler.NewHandler(scheduleService)
		journalH   = journalHandler.NewHandler(journalService)
		chatH      = chatHandler.NewHandler(chatService)
		importH    = importHandler.NewHandler(importService, financeService)
		reportH    = reportHandler.NewHandler(reportService)
	)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	router := opsdeskHttp.New(verifier, clientH, financeH, analyticsH, scheduleH, journalH, chatH, importH, reportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
