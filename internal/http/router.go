package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"answerdesk/internal/handlers"
	"answerdesk/internal/query"
	"answerdesk/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine      query.Engine
	Tenants     storage.TenantStore
	QueryLogs   storage.QueryLogStore
	Ingest      handlers.IngestService
	DB          *sql.DB
	AdminAPIKey string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	queryHandler := handlers.NewQueryHandler(deps.Engine)
	widgetHandler := handlers.NewWidgetConfigHandler(deps.Tenants)
	healthHandler := handlers.NewHealthHandler(deps.DB)
	adminHandler := handlers.NewAdminHandler(deps.Tenants, deps.QueryLogs, deps.Ingest)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/query", queryHandler)
		r.Method(http.MethodGet, "/widget/{siteID}/config", widgetHandler)
	})
	r.Route("/admin", func(r chi.Router) {
		r.Use(AdminAuth(deps.AdminAPIKey))
		r.Post("/ingest/text", adminHandler.IngestContent)
		r.Delete("/jobs/{siteID}/{jobID}", adminHandler.DeleteJob)
		r.Post("/reindex/{siteID}", adminHandler.Reindex)
		r.Get("/stats/{siteID}", adminHandler.TenantStats)
	})
	r.Method(http.MethodGet, "/healthz", healthHandler)

	return r
}
