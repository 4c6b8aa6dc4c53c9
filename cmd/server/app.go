package main

import (
	"net/http"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/invoicedesk/httpx"
	"github.com/diewo77/invoicedesk/internal/config"
	"github.com/diewo77/invoicedesk/internal/export"
	"github.com/diewo77/invoicedesk/internal/handlers"
	"github.com/diewo77/invoicedesk/internal/metrics"
	"github.com/diewo77/invoicedesk/internal/middleware"
	"github.com/diewo77/invoicedesk/internal/store"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	db      *gorm.DB
	metrics *metrics.Metrics
	handler http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *App {
	app := &App{
		mux:     http.NewServeMux(),
		db:      db,
		metrics: metrics.New(),
	}

	api := handlers.NewAPI(store.NewGorm(db), export.DefaultRegistry(), app.metrics)
	api.Defaults = handlers.Defaults{
		VATRate:     cfg.App.VATRate(),
		Country:     cfg.App.DefaultCountry,
		Currency:    cfg.App.Currency,
		PaymentDays: cfg.App.PaymentDays,
		Template:    cfg.App.Template,
	}
	api.Register(app.mux)
	app.setupRoutes()

	app.handler = middleware.Chain(app.mux,
		middleware.RequestID(log),
		middleware.Prefs,
		middleware.Logging(app.metrics),
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures the operational routes next to the API.
func (a *App) setupRoutes() {
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		// Perform a lightweight DB check (SELECT 1)
		if err := a.db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	a.mux.Handle("GET /metrics", a.metrics.Handler())
}
