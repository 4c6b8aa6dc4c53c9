package screens

import (
	"context"
	"fmt"

	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/search"
	"github.com/diewo77/invoicedesk/internal/store"
	"github.com/diewo77/invoicedesk/validation"
)

const entityProduct = "entity.product"

// ProductScreen is the product list with its search box and edit dialog.
type ProductScreen struct {
	deps  Deps
	store store.ProductStore

	items []models.Product
	query string

	Editor *Editor[models.Product]
}

// NewProductScreen returns an empty screen; call Refresh to load it.
func NewProductScreen(s store.ProductStore, deps Deps) *ProductScreen {
	deps = deps.withDefaults()
	ps := &ProductScreen{deps: deps, store: s}
	ps.Editor = NewEditor(deps, EditorHooks[models.Product]{
		Entity:   entityProduct,
		New:      func() models.Product { return models.Product{VATRate: deps.DefaultVATRate} },
		Validate: ValidateProduct,
		Create:   s.CreateProduct,
		Update:   s.UpdateProduct,
		Saved:    func(ctx context.Context) { _ = ps.Refresh(ctx) },
	})
	return ps
}

// ValidateProduct checks a product draft.
func ValidateProduct(p models.Product) validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", p.Name, v)
	validation.NonNegative("unit_price", p.UnitPrice, v)
	validation.NonNegative("vat_rate", p.VATRate, v)
	return v
}

// Refresh reloads the list. On failure the previous items are kept.
func (s *ProductScreen) Refresh(ctx context.Context) error {
	items, err := s.store.ListProducts(ctx)
	if err != nil {
		return loadFailed(s.deps, entityProduct, err)
	}
	s.items = items
	return nil
}

// Items returns every loaded product.
func (s *ProductScreen) Items() []models.Product { return s.items }

// SetQuery changes the search text.
func (s *ProductScreen) SetQuery(q string) { s.query = q }

// Query returns the search text.
func (s *ProductScreen) Query() string { return s.query }

// Visible returns the products matching the search text.
func (s *ProductScreen) Visible() []models.Product {
	return search.Products(s.items, s.query)
}

// Find returns the loaded product with id.
func (s *ProductScreen) Find(id uint) (models.Product, bool) {
	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Edit opens the dialog for the loaded product with id.
func (s *ProductScreen) Edit(id uint) error {
	p, ok := s.Find(id)
	if !ok {
		s.deps.Notifier.Error(s.deps.tf("notify.not_found", s.deps.t(entityProduct)))
		return fmt.Errorf("product %d: %w", id, store.ErrNotFound)
	}
	s.Editor.OpenEdit(id, p)
	return nil
}

// Delete removes a product after confirmation and refreshes the list.
func (s *ProductScreen) Delete(ctx context.Context, id uint) (bool, error) {
	p, _ := s.Find(id)
	deleted, err := confirmDelete(ctx, s.deps, entityProduct, p.Name, id, s.store.DeleteProduct)
	if deleted {
		_ = s.Refresh(ctx)
	}
	return deleted, err
}
