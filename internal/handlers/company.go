package handlers

import (
	"net/http"

	"github.com/diewo77/invoicedesk/httpx"
	"github.com/diewo77/invoicedesk/internal/notify"
	"github.com/diewo77/invoicedesk/internal/screens"
	"github.com/diewo77/invoicedesk/internal/store"
)

// GetCompany returns the issuing company.
func (a *API) GetCompany(w http.ResponseWriter, r *http.Request) {
	rec := &notify.Recorder{}
	cs := screens.NewCompanyScreen(a.Store, a.deps(r, rec))
	if err := cs.Refresh(r.Context()); err != nil {
		fail(w, err, rec)
		return
	}
	c, found := cs.Current()
	if !found {
		fail(w, store.ErrNotFound, rec)
		return
	}
	httpx.JSON(w, http.StatusOK, Response{Data: c})
}

// SaveCompany updates the issuing company, creating it when none exists.
func (a *API) SaveCompany(w http.ResponseWriter, r *http.Request) {
	rec := &notify.Recorder{}
	cs := screens.NewCompanyScreen(a.Store, a.deps(r, rec))
	if err := cs.Refresh(r.Context()); err != nil {
		fail(w, err, rec)
		return
	}
	cs.Open()
	if err := httpx.DecodeJSON(r, cs.Editor.Draft()); err != nil {
		badRequest(w, "invalid_json")
		return
	}
	c, err := cs.Editor.Save(r.Context())
	if err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusOK, c, rec)
}
