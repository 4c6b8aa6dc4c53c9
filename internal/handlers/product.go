package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/invoicedesk/httpx"
	"github.com/diewo77/invoicedesk/internal/notify"
	"github.com/diewo77/invoicedesk/internal/screens"
)

func (a *API) products(r *http.Request) (*screens.ProductScreen, *notify.Recorder) {
	rec := &notify.Recorder{}
	return screens.NewProductScreen(a.Store, a.deps(r, rec)), rec
}

// ListProducts returns the products matching ?q=.
func (a *API) ListProducts(w http.ResponseWriter, r *http.Request) {
	ps, rec := a.products(r)
	if err := ps.Refresh(r.Context()); err != nil {
		fail(w, err, rec)
		return
	}
	ps.SetQuery(strings.TrimSpace(r.URL.Query().Get("q")))
	items := ps.Visible()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items), "query": ps.Query()})
}

// CreateProduct decodes the body over a fresh draft and saves it.
func (a *API) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ps, rec := a.products(r)
	ps.Editor.OpenNew()
	if err := httpx.DecodeJSON(r, ps.Editor.Draft()); err != nil {
		badRequest(w, "invalid_json")
		return
	}
	p, err := ps.Editor.Save(r.Context())
	if err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusCreated, p, rec)
}

// UpdateProduct decodes the body over the stored product and saves it.
func (a *API) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, found := pathID(r)
	if !found {
		badRequest(w, "invalid_id")
		return
	}
	ps, rec := a.products(r)
	if err := ps.Refresh(r.Context()); err != nil {
		fail(w, err, rec)
		return
	}
	if err := ps.Edit(id); err != nil {
		fail(w, err, rec)
		return
	}
	if err := httpx.DecodeJSON(r, ps.Editor.Draft()); err != nil {
		badRequest(w, "invalid_json")
		return
	}
	p, err := ps.Editor.Save(r.Context())
	if err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusOK, p, rec)
}

// DeleteProduct removes a product.
func (a *API) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, found := pathID(r)
	if !found {
		badRequest(w, "invalid_id")
		return
	}
	ps, rec := a.products(r)
	if err := ps.Refresh(r.Context()); err != nil {
		fail(w, err, rec)
		return
	}
	if _, err := ps.Delete(r.Context(), id); err != nil {
		fail(w, err, rec)
		return
	}
	ok(w, http.StatusOK, nil, rec)
}
