package screens

import (
	"context"
	"fmt"

	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/store"
)

// fakeStore is an in-memory store that counts calls and can be told to fail.
type fakeStore struct {
	products  []models.Product
	clients   []models.Client
	invoices  []models.Invoice
	companies []models.CompanySettings

	nextID  uint
	err     error // returned by every mutation when set
	listErr error

	calls map[string]int
	// lastInvoiceUpdate is the record passed to the latest UpdateInvoice.
	lastInvoiceUpdate models.Invoice
}

var _ store.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 100, calls: map[string]int{}}
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) ListProducts(context.Context) ([]models.Product, error) {
	f.calls["ListProducts"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Product(nil), f.products...), nil
}

func (f *fakeStore) GetProduct(_ context.Context, id uint) (models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %d: %w", id, store.ErrNotFound)
}

func (f *fakeStore) CreateProduct(_ context.Context, p models.Product) (models.Product, error) {
	f.calls["CreateProduct"]++
	if f.err != nil {
		return models.Product{}, f.err
	}
	p.ID = f.id()
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, id uint, p models.Product) (models.Product, error) {
	f.calls["UpdateProduct"]++
	if f.err != nil {
		return models.Product{}, f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			p.ID = id
			f.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, store.ErrNotFound
}

func (f *fakeStore) DeleteProduct(_ context.Context, id uint) error {
	f.calls["DeleteProduct"]++
	if f.err != nil {
		return f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) ListClients(context.Context) ([]models.Client, error) {
	f.calls["ListClients"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Client(nil), f.clients...), nil
}

func (f *fakeStore) GetClient(_ context.Context, id uint) (models.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, store.ErrNotFound
}

func (f *fakeStore) CreateClient(_ context.Context, c models.Client) (models.Client, error) {
	f.calls["CreateClient"]++
	if f.err != nil {
		return models.Client{}, f.err
	}
	c.ID = f.id()
	f.clients = append(f.clients, c)
	return c, nil
}

func (f *fakeStore) UpdateClient(_ context.Context, id uint, c models.Client) (models.Client, error) {
	f.calls["UpdateClient"]++
	if f.err != nil {
		return models.Client{}, f.err
	}
	for i := range f.clients {
		if f.clients[i].ID == id {
			c.ID = id
			f.clients[i] = c
			return c, nil
		}
	}
	return models.Client{}, store.ErrNotFound
}

func (f *fakeStore) DeleteClient(_ context.Context, id uint) error {
	f.calls["DeleteClient"]++
	if f.err != nil {
		return f.err
	}
	for i := range f.clients {
		if f.clients[i].ID == id {
			f.clients = append(f.clients[:i], f.clients[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) ListInvoices(context.Context) ([]models.Invoice, error) {
	f.calls["ListInvoices"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Invoice(nil), f.invoices...), nil
}

func (f *fakeStore) GetInvoice(_ context.Context, id uint) (models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invoice{}, store.ErrNotFound
}

func (f *fakeStore) CreateInvoice(_ context.Context, inv models.Invoice) (models.Invoice, error) {
	f.calls["CreateInvoice"]++
	if f.err != nil {
		return models.Invoice{}, f.err
	}
	inv.ID = f.id()
	inv.Recalculate()
	f.invoices = append(f.invoices, inv)
	return inv, nil
}

func (f *fakeStore) UpdateInvoice(_ context.Context, id uint, inv models.Invoice) (models.Invoice, error) {
	f.calls["UpdateInvoice"]++
	f.lastInvoiceUpdate = inv
	if f.err != nil {
		return models.Invoice{}, f.err
	}
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			inv.ID = id
			f.invoices[i] = inv
			return inv, nil
		}
	}
	return models.Invoice{}, store.ErrNotFound
}

func (f *fakeStore) DeleteInvoice(_ context.Context, id uint) error {
	f.calls["DeleteInvoice"]++
	if f.err != nil {
		return f.err
	}
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			f.invoices = append(f.invoices[:i], f.invoices[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) ListCompanies(context.Context) ([]models.CompanySettings, error) {
	f.calls["ListCompanies"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.CompanySettings(nil), f.companies...), nil
}

func (f *fakeStore) SaveCompany(_ context.Context, c models.CompanySettings) (models.CompanySettings, error) {
	f.calls["SaveCompany"]++
	if f.err != nil {
		return models.CompanySettings{}, f.err
	}
	if c.ID == 0 {
		c.ID = f.id()
		f.companies = append(f.companies, c)
		return c, nil
	}
	for i := range f.companies {
		if f.companies[i].ID == c.ID {
			f.companies[i] = c
			return c, nil
		}
	}
	return models.CompanySettings{}, store.ErrNotFound
}
