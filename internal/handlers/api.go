package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/diewo77/invoicedesk/httpx"
	"github.com/diewo77/invoicedesk/i18n"
	"github.com/diewo77/invoicedesk/internal/clock"
	"github.com/diewo77/invoicedesk/internal/export"
	"github.com/diewo77/invoicedesk/internal/metrics"
	"github.com/diewo77/invoicedesk/internal/notify"
	"github.com/diewo77/invoicedesk/internal/screens"
	"github.com/diewo77/invoicedesk/internal/services"
	"github.com/diewo77/invoicedesk/internal/store"
	"github.com/diewo77/invoicedesk/validation"
)

// Defaults are the draft defaults handed to every screen.
type Defaults struct {
	VATRate     decimal.Decimal
	Country     string
	Currency    string
	PaymentDays int
	Template    string
}

// API serves the JSON endpoints. Each request builds fresh screens over the
// shared store, so no list state is kept between requests.
type API struct {
	Store    store.Store
	Registry *export.Registry
	Metrics  *metrics.Metrics
	Clock    clock.Clock
	Defaults Defaults
}

func NewAPI(s store.Store, registry *export.Registry, m *metrics.Metrics) *API {
	return &API{Store: s, Registry: registry, Metrics: m, Clock: clock.Real()}
}

// Register mounts the API routes on mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", a.ListProducts)
	mux.HandleFunc("POST /api/products", a.CreateProduct)
	mux.HandleFunc("PUT /api/products/{id}", a.UpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", a.DeleteProduct)

	mux.HandleFunc("GET /api/clients", a.ListClients)
	mux.HandleFunc("GET /api/clients/tax-fields", a.TaxFields)
	mux.HandleFunc("POST /api/clients", a.CreateClient)
	mux.HandleFunc("PUT /api/clients/{id}", a.UpdateClient)
	mux.HandleFunc("DELETE /api/clients/{id}", a.DeleteClient)

	mux.HandleFunc("GET /api/invoices", a.ListInvoices)
	mux.HandleFunc("POST /api/invoices", a.CreateInvoice)
	mux.HandleFunc("PUT /api/invoices/{id}", a.UpdateInvoice)
	mux.HandleFunc("DELETE /api/invoices/{id}", a.DeleteInvoice)
	mux.HandleFunc("POST /api/invoices/{id}/paid", a.MarkPaid)
	mux.HandleFunc("GET /api/invoices/{id}/export", a.ExportInvoice)
	mux.HandleFunc("GET /api/invoices/{id}/email", a.EmailInvoice)

	mux.HandleFunc("GET /api/company", a.GetCompany)
	mux.HandleFunc("PUT /api/company", a.SaveCompany)

	mux.HandleFunc("GET /api/summary", a.Summary)
}

// Response is the envelope of every API answer.
type Response struct {
	Data          any                   `json:"data,omitempty"`
	Error         string                `json:"error,omitempty"`
	Violations    validation.Violations `json:"violations,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

// deps builds the screen dependencies for one request. The HTTP method is
// the confirmation, so deletes are not prompted again.
func (a *API) deps(r *http.Request, rec *notify.Recorder) screens.Deps {
	return screens.Deps{
		Notifier:       rec,
		Confirmer:      screens.AlwaysConfirm,
		Log:            *zerolog.Ctx(r.Context()),
		Clock:          a.Clock,
		Lang:           i18n.LangFromContext(r.Context()),
		DefaultVATRate: a.Defaults.VATRate,
		DefaultCountry: a.Defaults.Country,
		Currency:       a.Defaults.Currency,
		PaymentDays:    a.Defaults.PaymentDays,
	}
}

func (a *API) dispatcher(r *http.Request, rec *notify.Recorder) *export.Dispatcher {
	d := export.NewDispatcher(a.Registry, rec, *zerolog.Ctx(r.Context()))
	d.Lang = i18n.LangFromContext(r.Context())
	d.Metrics = a.Metrics
	if a.Defaults.Template != "" {
		d.Template = a.Defaults.Template
	}
	return d
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func ok(w http.ResponseWriter, status int, data any, rec *notify.Recorder) {
	httpx.JSON(w, status, Response{Data: data, Notifications: rec.Notifications()})
}

func badRequest(w http.ResponseWriter, msg string) {
	httpx.JSONError(w, http.StatusBadRequest, msg, nil)
}

// fail maps an operation error to a status code.
func fail(w http.ResponseWriter, err error, rec *notify.Recorder) {
	resp := Response{Error: "operation_failed", Notifications: rec.Notifications()}
	status := http.StatusInternalServerError

	var verr *screens.ValidationError
	switch {
	case errors.As(err, &verr):
		status, resp.Error, resp.Violations = http.StatusUnprocessableEntity, "validation_failed", verr.Violations
	case errors.Is(err, store.ErrNotFound):
		status, resp.Error = http.StatusNotFound, "not_found"
	case errors.Is(err, store.ErrInUse):
		status, resp.Error = http.StatusConflict, "in_use"
	case errors.Is(err, export.ErrUnresolved), errors.Is(err, export.ErrNoEmail):
		status, resp.Error = http.StatusConflict, "precondition_failed"
	case errors.Is(err, export.ErrUnknownFormat):
		status, resp.Error = http.StatusBadRequest, "unknown_format"
	}
	httpx.JSON(w, status, resp)
}

// Summary returns the dashboard figures.
func (a *API) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := services.NewInvoiceService(a.Store, a.Clock).Summary(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("summary failed")
		httpx.JSONError(w, http.StatusInternalServerError, "summary_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, Response{Data: sum})
}
