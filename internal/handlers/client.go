package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/invoicedesk/httpx"
	"github.com/diewo77/invoicedesk/i18n"
	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/notify"
	"github.com/diewo77/invoicedesk/internal/screens"
)

func (a *API) clients(r *http.Request) (*screens.ClientScreen, *notify.Recorder) {
	rec := &notify.Recorder{}
	return screens.NewClientScreen(a.Store, a.deps(r, rec)), rec
}

// ListClients returns the clients matching ?q= with their identifier column.
func (a *API) ListClients(w http.ResponseWriter, r *http.Request) {
	cs, rec := a.clients(r)
	if err := cs.Refresh(r.Context()); err != nil {
		fail(w, err, rec)
		return
	}
	cs.SetQuery(strings.TrimSpace(r.URL.Query().Get("q")))
	rows := cs.Rows()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows), "query": cs.Query()})
}

type taxField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TaxFields lists the identifier inputs for ?country=.
func (a *API) TaxFields(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFromContext(r.Context())
	country := r.URL.Query().Get("country")
	if country == "" {
		country = a.Defaults.Country
	}
	if country == "" {
		country = models.DefaultCountry
	}
	fields := models.TaxFieldsFor(country)
	out := make([]taxField, len(fields))
	for i, f := range fields {
		out[i] = taxField{Key: f.Key, Label: i18n.T(lang, f.Label)}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"country": strings.ToUpper(country), "fields": out})
}

// CreateClient decodes the body over a fresh draft and saves it.
func (a *API) CreateClient(w http.ResponseWriter, r *http.Request) {
	cs, rec := a.clients(r)
	cs.Editor.OpenNew()
	if err := httpx.DecodeJSON(r, cs.Editor.Draft()); err != nil {
		badRequest(w, "invalid_json")
		return
	}
	c, err := cs.Editor.Save(r.Context())
	if err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusCreated, screens.ClientRow{Client: c, TaxID: c.TaxIDDisplay()}, rec)
}

// UpdateClient decodes the body over the stored client and saves it.
func (a *API) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, found := pathID(r)
	if !found {
		badRequest(w, "invalid_id")
		return
	}
	cs, rec := a.clients(r)
	if err := cs.Refresh(r.Context()); err != nil {
		fail(w, err, rec)
		return
	}
	if err := cs.Edit(id); err != nil {
		fail(w, err, rec)
		return
	}
	if err := httpx.DecodeJSON(r, cs.Editor.Draft()); err != nil {
		badRequest(w, "invalid_json")
		return
	}
	c, err := cs.Editor.Save(r.Context())
	if err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusOK, screens.ClientRow{Client: c, TaxID: c.TaxIDDisplay()}, rec)
}

// DeleteClient removes a client that no invoice references.
func (a *API) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, found := pathID(r)
	if !found {
		badRequest(w, "invalid_id")
		return
	}
	cs, rec := a.clients(r)
	if err := cs.Refresh(r.Context()); err != nil {
		fail(w, err, rec)
		return
	}
	if _, err := cs.Delete(r.Context(), id); err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusOK, nil, rec)
}
