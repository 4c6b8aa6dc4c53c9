package handlers

import (
	"net/http"

	"github.com/diewo77/invoicedesk/httpx"
	"github.com/diewo77/invoicedesk/internal/export"
	"github.com/diewo77/invoicedesk/internal/notify"
	"github.com/diewo77/invoicedesk/internal/screens"
)

// invoices returns a loaded invoice screen. On load failure the error
// response is already written and nil is returned.
func (a *API) invoices(w http.ResponseWriter, r *http.Request) (*screens.InvoiceScreen, *notify.Recorder) {
	rec := &notify.Recorder{}
	is := screens.NewInvoiceScreen(a.Store, a.dispatcher(r, rec), a.deps(r, rec))
	if err := is.Refresh(r.Context()); err != nil {
		fail(w, err, rec)
		return nil, rec
	}
	return is, rec
}

// ListInvoices returns every invoice, newest first.
func (a *API) ListInvoices(w http.ResponseWriter, r *http.Request) {
	is, _ := a.invoices(w, r)
	if is == nil {
		return
	}
	items := is.Items()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// CreateInvoice decodes the body over a fresh draft and saves it. The number
// is assigned by the store.
func (a *API) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	is, rec := a.invoices(w, r)
	if is == nil {
		return
	}
	is.Editor.OpenNew()
	if err := httpx.DecodeJSON(r, is.Editor.Draft()); err != nil {
		badRequest(w, "invalid_json")
		return
	}
	saved, err := is.Editor.Save(r.Context())
	if err != nil {
		fail(w, err, rec)
		return
	}
	var data any = saved
	if inv, found := is.Find(saved.ID); found {
		data = inv
	}
	ok(w, http.StatusCreated, data, rec)
}

// UpdateInvoice decodes the body over the stored invoice and saves it.
func (a *API) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, found := pathID(r)
	if !found {
		badRequest(w, "invalid_id")
		return
	}
	is, rec := a.invoices(w, r)
	if is == nil {
		return
	}
	if err := is.Edit(id); err != nil {
		fail(w, err, rec)
		return
	}
	// Sent lines replace the stored ones whole; omitted lines are kept.
	draft := is.Editor.Draft()
	stored := draft.Lines
	draft.Lines = nil
	if err := httpx.DecodeJSON(r, draft); err != nil {
		badRequest(w, "invalid_json")
		return
	}
	if draft.Lines == nil {
		draft.Lines = stored
	}
	if _, err := is.Editor.Save(r.Context()); err != nil {
		fail(w, err, rec)
		return
	}
	inv, _ := is.Find(id)
	ok(w, http.StatusOK, inv, rec)
}

// DeleteInvoice removes an invoice with its lines.
func (a *API) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, found := pathID(r)
	if !found {
		badRequest(w, "invalid_id")
		return
	}
	is, rec := a.invoices(w, r)
	if is == nil {
		return
	}
	if _, err := is.Delete(r.Context(), id); err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusOK, nil, rec)
}

// MarkPaid sets the invoice status to paid.
func (a *API) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, found := pathID(r)
	if !found {
		badRequest(w, "invalid_id")
		return
	}
	is, rec := a.invoices(w, r)
	if is == nil {
		return
	}
	inv, err := is.MarkPaid(r.Context(), id)
	if err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusOK, inv, rec)
}

// ExportInvoice downloads the invoice rendered in ?format= (pdf by default).
// Notifications travel in the X-Notification header on success.
func (a *API) ExportInvoice(w http.ResponseWriter, r *http.Request) {
	id, found := pathID(r)
	if !found {
		badRequest(w, "invalid_id")
		return
	}
	is, rec := a.invoices(w, r)
	if is == nil {
		return
	}
	raw := r.URL.Query().Get("format")
	if raw == "" {
		raw = string(export.FormatPDF)
	}
	format, err := export.ParseFormat(raw)
	if err != nil {
		// let the dispatcher report it like any unregistered format
		format = export.Format(raw)
	}
	artifact, err := is.Export(r.Context(), id, format)
	if err != nil {
		fail(w, err, rec)
		return
	}
	for _, n := range rec.Notifications() {
		w.Header().Add("X-Notification", n.Message)
	}
	httpx.Attachment(w, artifact.Filename, artifact.ContentType, artifact.Data)
}

type mailResponse struct {
	export.Mail
	URL string `json:"url"`
}

// EmailInvoice composes the invoice e-mail and returns it with its mailto: link.
func (a *API) EmailInvoice(w http.ResponseWriter, r *http.Request) {
	id, found := pathID(r)
	if !found {
		badRequest(w, "invalid_id")
		return
	}
	is, rec := a.invoices(w, r)
	if is == nil {
		return
	}
	mail, err := is.Email(r.Context(), id)
	if err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusOK, mailResponse{Mail: mail, URL: mail.URL()}, rec)
}
