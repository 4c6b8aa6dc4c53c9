package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/invoicedesk/internal/models"
)

// Gorm implements Store on top of a GORM connection. It is safe for
// concurrent use.
type Gorm struct {
	db *gorm.DB
}

var _ Store = (*Gorm)(nil)

// NewGorm returns a store backed by db.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func notFound(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return fmt.Errorf("load %s %d: %w", entity, id, err)
}

// Products

func (s *Gorm) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("name, id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Gorm) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return models.Product{}, notFound("product", id, err)
	}
	return p, nil
}

func (s *Gorm) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = 0
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *Gorm) UpdateProduct(ctx context.Context, id uint, p models.Product) (models.Product, error) {
	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return models.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return p, nil
}

func (s *Gorm) DeleteProduct(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)
	var refs int64
	if err := db.Model(&models.InvoiceItem{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if refs > 0 {
		return fmt.Errorf("product %d is on %d invoice lines: %w", id, refs, ErrInUse)
	}
	res := db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// Clients

func (s *Gorm) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Order("name, id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	for i := range clients {
		models.UpgradeClient(&clients[i])
	}
	return clients, nil
}

func (s *Gorm) GetClient(ctx context.Context, id uint) (models.Client, error) {
	var c models.Client
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return models.Client{}, notFound("client", id, err)
	}
	models.UpgradeClient(&c)
	return c, nil
}

func (s *Gorm) CreateClient(ctx context.Context, c models.Client) (models.Client, error) {
	c.ID = 0
	models.UpgradeClient(&c)
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return models.Client{}, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

func (s *Gorm) UpdateClient(ctx context.Context, id uint, c models.Client) (models.Client, error) {
	existing, err := s.GetClient(ctx, id)
	if err != nil {
		return models.Client{}, err
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	models.UpgradeClient(&c)
	if err := s.db.WithContext(ctx).Save(&c).Error; err != nil {
		return models.Client{}, fmt.Errorf("update client %d: %w", id, err)
	}
	return c, nil
}

func (s *Gorm) DeleteClient(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)
	var refs int64
	if err := db.Model(&models.Invoice{}).Where("client_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	if refs > 0 {
		return fmt.Errorf("client %d has %d invoices: %w", id, refs, ErrInUse)
	}
	res := db.Delete(&models.Client{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete client %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return nil
}

// Invoices

func (s *Gorm) invoiceQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") })
}

func (s *Gorm) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.invoiceQuery(ctx).Order("created_at DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	for i := range invoices {
		if invoices[i].Client != nil {
			models.UpgradeClient(invoices[i].Client)
		}
	}
	return invoices, nil
}

func (s *Gorm) GetInvoice(ctx context.Context, id uint) (models.Invoice, error) {
	var inv models.Invoice
	if err := s.invoiceQuery(ctx).First(&inv, id).Error; err != nil {
		return models.Invoice{}, notFound("invoice", id, err)
	}
	if inv.Client != nil {
		models.UpgradeClient(inv.Client)
	}
	return inv, nil
}

func (s *Gorm) CreateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	inv.ID = 0
	inv.Client = nil
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusUnpaid
	}
	if inv.Currency == "" {
		inv.Currency = models.DefaultCurrency
	}
	for i := range inv.Items {
		inv.Items[i].ID = 0
		inv.Items[i].InvoiceID = 0
	}
	inv.Recalculate()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if inv.Number == "" {
			number, err := nextInvoiceNumber(tx, inv.IssueDate.Year())
			if err != nil {
				return err
			}
			inv.Number = number
		}
		return tx.Create(&inv).Error
	})
	if err != nil {
		return models.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}
	return s.GetInvoice(ctx, inv.ID)
}

func (s *Gorm) UpdateInvoice(ctx context.Context, id uint, inv models.Invoice) (models.Invoice, error) {
	var existing models.Invoice
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return models.Invoice{}, notFound("invoice", id, err)
	}
	inv.ID = id
	inv.Client = nil
	inv.CreatedAt = existing.CreatedAt
	if inv.Number == "" {
		inv.Number = existing.Number
	}
	inv.Recalculate()

	stamp := inv.UpdatedAt
	items := inv.Items
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&inv).Error; err != nil {
			return err
		}
		// Save always stamps gorm's own time; keep the caller's.
		if !stamp.IsZero() {
			if err := tx.Model(&models.Invoice{}).Where("id = ?", id).UpdateColumn("updated_at", stamp).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].InvoiceID = id
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return models.Invoice{}, fmt.Errorf("update invoice %d: %w", id, err)
	}
	return s.GetInvoice(ctx, id)
}

func (s *Gorm) DeleteInvoice(ctx context.Context, id uint) error {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Invoice{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	return nil
}

// nextInvoiceNumber returns the next INV-YYYY-NNNN number for year.
func nextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	prefix := models.InvoiceNumberPrefix(year)
	var numbers []string
	if err := tx.Model(&models.Invoice{}).Where("number LIKE ?", prefix+"%").Pluck("number", &numbers).Error; err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	last := 0
	for _, n := range numbers {
		if seq, err := strconv.Atoi(strings.TrimPrefix(n, prefix)); err == nil && seq > last {
			last = seq
		}
	}
	return models.FormatInvoiceNumber(year, last+1), nil
}

// Companies

func (s *Gorm) ListCompanies(ctx context.Context) ([]models.CompanySettings, error) {
	var companies []models.CompanySettings
	if err := s.db.WithContext(ctx).Order("id").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// SaveCompany creates the company when it has no ID and updates it otherwise.
// Marking a company as default clears the flag on every other profile.
func (s *Gorm) SaveCompany(ctx context.Context, c models.CompanySettings) (models.CompanySettings, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.ID != 0 {
			var existing models.CompanySettings
			if err := tx.First(&existing, c.ID).Error; err != nil {
				return notFound("company", c.ID, err)
			}
			c.CreatedAt = existing.CreatedAt
		}
		if err := tx.Save(&c).Error; err != nil {
			return err
		}
		if !c.IsDefault {
			return nil
		}
		return tx.Model(&models.CompanySettings{}).Where("id <> ?", c.ID).Update("is_default", false).Error
	})
	if err != nil {
		return models.CompanySettings{}, fmt.Errorf("save company: %w", err)
	}
	return c, nil
}
