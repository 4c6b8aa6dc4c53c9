package screens

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/invoicedesk/internal/export"
	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/store"
	"github.com/diewo77/invoicedesk/validation"
)

const entityInvoice = "entity.invoice"

// InvoiceDraft is the editable part of an invoice.
type InvoiceDraft struct {
	// ID is set on drafts read back from the store and ignored on save.
	ID        uint                 `json:"id,omitempty"`
	ClientID  uint                 `json:"client_id"`
	Number    string               `json:"number,omitempty"`
	IssueDate time.Time            `json:"issue_date"`
	DueDate   time.Time            `json:"due_date"`
	Status    models.InvoiceStatus `json:"status,omitempty"`
	Currency  string               `json:"currency,omitempty"`
	Notes     string               `json:"notes,omitempty"`
	Lines     []models.InvoiceItem `json:"lines"`
}

// AddProductLine appends a line priced from p.
func (d *InvoiceDraft) AddProductLine(p models.Product, qty decimal.Decimal) {
	id := p.ID
	d.Lines = append(d.Lines, models.InvoiceItem{
		ProductID:   &id,
		Description: p.Name,
		Quantity:    qty,
		UnitPrice:   p.UnitPrice,
		VATRate:     p.VATRate,
	})
}

// Invoice converts the draft into a record for the store.
func (d InvoiceDraft) Invoice() models.Invoice {
	lines := make([]models.InvoiceItem, len(d.Lines))
	copy(lines, d.Lines)
	return models.Invoice{
		ClientID:  d.ClientID,
		Number:    d.Number,
		IssueDate: d.IssueDate,
		DueDate:   d.DueDate,
		Status:    d.Status,
		Currency:  d.Currency,
		Notes:     d.Notes,
		Items:     lines,
	}
}

// DraftFromInvoice copies a stored invoice into a draft.
func DraftFromInvoice(inv models.Invoice) InvoiceDraft {
	lines := make([]models.InvoiceItem, len(inv.Items))
	copy(lines, inv.Items)
	return InvoiceDraft{
		ID:        inv.ID,
		ClientID:  inv.ClientID,
		Number:    inv.Number,
		IssueDate: inv.IssueDate,
		DueDate:   inv.DueDate,
		Status:    inv.Status,
		Currency:  inv.Currency,
		Notes:     inv.Notes,
		Lines:     lines,
	}
}

// ValidateInvoice checks an invoice draft.
func ValidateInvoice(d InvoiceDraft) validation.Violations {
	v := make(validation.Violations)
	validation.NonZero("client_id", d.ClientID, v)
	validation.NotEmpty("lines", len(d.Lines), v)
	if d.Status != "" && !d.Status.Valid() {
		v["status"] = "invalid_status"
	}
	if !d.DueDate.IsZero() && d.DueDate.Before(d.IssueDate) {
		v["due_date"] = "before_issue_date"
	}
	for i, line := range d.Lines {
		if line.Description == "" {
			v[fmt.Sprintf("lines[%d].description", i)] = "required"
		}
		if !line.Quantity.IsPositive() {
			v[fmt.Sprintf("lines[%d].quantity", i)] = "not_positive"
		}
		validation.NonNegative(fmt.Sprintf("lines[%d].unit_price", i), line.UnitPrice, v)
	}
	return v
}

// InvoiceStores is what the invoice screen reads and writes. Clients and
// companies are only read, to resolve export parties.
type InvoiceStores interface {
	store.InvoiceStore
	ListClients(ctx context.Context) ([]models.Client, error)
	ListCompanies(ctx context.Context) ([]models.CompanySettings, error)
}

// InvoiceScreen is the invoice list with its row actions: mark paid,
// delete, export and e-mail, plus the create/edit dialog.
type InvoiceScreen struct {
	deps       Deps
	store      InvoiceStores
	dispatcher *export.Dispatcher

	items     []models.Invoice
	clients   []models.Client
	companies []models.CompanySettings

	Editor *Editor[InvoiceDraft]
}

// NewInvoiceScreen returns an empty screen; call Refresh to load it.
func NewInvoiceScreen(s InvoiceStores, dispatcher *export.Dispatcher, deps Deps) *InvoiceScreen {
	deps = deps.withDefaults()
	is := &InvoiceScreen{deps: deps, store: s, dispatcher: dispatcher}
	is.Editor = NewEditor(deps, EditorHooks[InvoiceDraft]{
		Entity: entityInvoice,
		New: func() InvoiceDraft {
			y, m, d := deps.Clock.Now().Date()
			issue := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			return InvoiceDraft{
				IssueDate: issue,
				DueDate:   issue.AddDate(0, 0, deps.PaymentDays),
				Status:    models.InvoiceStatusUnpaid,
				Currency:  deps.Currency,
			}
		},
		Validate: ValidateInvoice,
		Create: func(ctx context.Context, d InvoiceDraft) (InvoiceDraft, error) {
			inv, err := s.CreateInvoice(ctx, d.Invoice())
			return DraftFromInvoice(inv), err
		},
		Update: func(ctx context.Context, id uint, d InvoiceDraft) (InvoiceDraft, error) {
			inv, err := s.UpdateInvoice(ctx, id, d.Invoice())
			return DraftFromInvoice(inv), err
		},
		Saved: func(ctx context.Context) { _ = is.Refresh(ctx) },
	})
	return is
}

// Refresh reloads invoices, clients and companies. Invoices are ordered
// newest first.
func (s *InvoiceScreen) Refresh(ctx context.Context) error {
	items, err := s.store.ListInvoices(ctx)
	if err != nil {
		return loadFailed(s.deps, entityInvoice, err)
	}
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return loadFailed(s.deps, entityClient, err)
	}
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return loadFailed(s.deps, entityCompany, err)
	}
	SortInvoices(items)
	s.items, s.clients, s.companies = items, clients, companies
	return nil
}

// SortInvoices orders invoices by creation time, newest first, then by ID.
func SortInvoices(items []models.Invoice) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

// Items returns the loaded invoices.
func (s *InvoiceScreen) Items() []models.Invoice { return s.items }

// Clients returns the loaded clients.
func (s *InvoiceScreen) Clients() []models.Client { return s.clients }

// Companies returns the loaded company profiles.
func (s *InvoiceScreen) Companies() []models.CompanySettings { return s.companies }

// Find returns the loaded invoice with id.
func (s *InvoiceScreen) Find(id uint) (models.Invoice, bool) {
	for _, inv := range s.items {
		if inv.ID == id {
			return inv, true
		}
	}
	return models.Invoice{}, false
}

func (s *InvoiceScreen) lookup(id uint) (models.Invoice, error) {
	inv, ok := s.Find(id)
	if !ok {
		s.deps.Notifier.Error(s.deps.tf("notify.not_found", s.deps.t(entityInvoice)))
		return models.Invoice{}, fmt.Errorf("invoice %d: %w", id, store.ErrNotFound)
	}
	return inv, nil
}

// Edit opens the dialog for the loaded invoice with id.
func (s *InvoiceScreen) Edit(id uint) error {
	inv, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.Editor.OpenEdit(id, DraftFromInvoice(inv))
	return nil
}

// MarkPaid sets the loaded invoice's status to paid and stores the full
// record. It does not check the current status.
func (s *InvoiceScreen) MarkPaid(ctx context.Context, id uint) (models.Invoice, error) {
	inv, err := s.lookup(id)
	if err != nil {
		return models.Invoice{}, err
	}
	log := s.deps.Log.With().Str("entity", entityInvoice).Uint("id", id).Logger()

	inv.Status = models.InvoiceStatusPaid
	inv.UpdatedAt = s.deps.Clock.Now()
	updated, err := s.store.UpdateInvoice(ctx, id, inv)
	if err != nil {
		log.Error().Err(err).Msg("mark paid failed")
		s.deps.Notifier.Error(s.deps.tf("notify.paid_failed", inv.Number))
		return models.Invoice{}, &OperationError{Op: "mark paid", Entity: entityInvoice, Err: err}
	}
	log.Info().Msg("invoice marked paid")
	s.deps.Notifier.Success(s.deps.tf("notify.marked_paid", inv.Number))
	_ = s.Refresh(ctx)
	return updated, nil
}

// Delete removes an invoice after confirmation and refreshes the list.
func (s *InvoiceScreen) Delete(ctx context.Context, id uint) (bool, error) {
	inv, _ := s.Find(id)
	deleted, err := confirmDelete(ctx, s.deps, entityInvoice, inv.Number, id, s.store.DeleteInvoice)
	if deleted {
		_ = s.Refresh(ctx)
	}
	return deleted, err
}

// Export renders the loaded invoice with id in format.
func (s *InvoiceScreen) Export(ctx context.Context, id uint, format export.Format) (export.Artifact, error) {
	inv, err := s.lookup(id)
	if err != nil {
		return export.Artifact{}, err
	}
	return s.dispatcher.Export(ctx, inv, s.clients, s.companies, format)
}

// Email composes the e-mail for the loaded invoice with id.
func (s *InvoiceScreen) Email(ctx context.Context, id uint) (export.Mail, error) {
	inv, err := s.lookup(id)
	if err != nil {
		return export.Mail{}, err
	}
	return s.dispatcher.Email(ctx, inv, s.clients, s.companies)
}
