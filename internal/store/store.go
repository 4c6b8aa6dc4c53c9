// Package store is the data-access layer. Every mutation of persisted
// records goes through one of its interfaces.
package store

import (
	"context"
	"errors"

	"github.com/diewo77/invoicedesk/internal/models"
)

var (
	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = errors.New("record not found")
	// ErrInUse is returned when deleting a record other records still reference.
	ErrInUse = errors.New("record is referenced by other records")
)

// ProductStore manages products.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id uint, p models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// ClientStore manages clients. Returned clients are always upgraded to the
// current schema version.
type ClientStore interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id uint) (models.Client, error)
	CreateClient(ctx context.Context, c models.Client) (models.Client, error)
	UpdateClient(ctx context.Context, id uint, c models.Client) (models.Client, error)
	DeleteClient(ctx context.Context, id uint) error
}

// InvoiceStore manages invoices and their line items. Totals are recomputed
// on every write. UpdateInvoice stores a non-zero UpdatedAt as given.
type InvoiceStore interface {
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, id uint) (models.Invoice, error)
	CreateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error)
	UpdateInvoice(ctx context.Context, id uint, inv models.Invoice) (models.Invoice, error)
	DeleteInvoice(ctx context.Context, id uint) error
}

// CompanyStore manages the issuing company profiles.
type CompanyStore interface {
	ListCompanies(ctx context.Context) ([]models.CompanySettings, error)
	SaveCompany(ctx context.Context, c models.CompanySettings) (models.CompanySettings, error)
}

// Store groups every collaborator the screens need.
type Store interface {
	ProductStore
	ClientStore
	InvoiceStore
	CompanyStore
}
