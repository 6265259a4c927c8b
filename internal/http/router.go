package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tomvds/opsdesk/internal/auth"
	analyticshttp "github.com/tomvds/opsdesk/internal/http/analytics"
	chathttp "github.com/tomvds/opsdesk/internal/http/chat"
	clienthttp "github.com/tomvds/opsdesk/internal/http/client"
	financehttp "github.com/tomvds/opsdesk/internal/http/finance"
	"github.com/tomvds/opsdesk/internal/http/importcsv"
	journalhttp "github.com/tomvds/opsdesk/internal/http/journal"
	reporthttp "github.com/tomvds/opsdesk/internal/http/report"
	schedulehttp "github.com/tomvds/opsdesk/internal/http/schedule"
)

func New(
	verifier *auth.Verifier,
	clientsV1 *clienthttp.Handler,
	financeV1 *financehttp.Handler,
	analyticsV1 *analyticshttp.Handler,
	scheduleV1 *schedulehttp.Handler,
	journalV1 *journalhttp.Handler,
	chatV1 *chathttp.Handler,
	importV1 *importcsv.Handler,
	reportsV1 *reporthttp.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(verifier.Middleware)

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/finance", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			financeV1.Routes(r)
		})

		r.Route("/analytics", analyticsV1.Routes)

		r.Route("/schedule", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			scheduleV1.Routes(r)
		})

		r.Route("/journal", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			journalV1.Routes(r)
		})

		r.Route("/chat", chatV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/reports", reportsV1.Routes)
	})

	return router
}
