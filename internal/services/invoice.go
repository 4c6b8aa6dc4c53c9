package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/invoicedesk/internal/clock"
	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/store"
)

// InvoiceService derives figures from stored invoices. It never writes.
type InvoiceService struct {
	store store.Store
	clock clock.Clock
}

func NewInvoiceService(s store.Store, c clock.Clock) *InvoiceService {
	if c == nil {
		c = clock.Real()
	}
	return &InvoiceService{store: s, clock: c}
}

// Amount is a sum in one currency.
type Amount struct {
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
}

// Summary is the dashboard overview.
type Summary struct {
	Products int `json:"products"`
	Clients  int `json:"clients"`
	Invoices int `json:"invoices"`
	Unpaid   int `json:"unpaid"`
	Overdue  int `json:"overdue"`

	// Revenue sums paid invoices, Outstanding unpaid ones; both per currency.
	Revenue     []Amount `json:"revenue"`
	Outstanding []Amount `json:"outstanding"`

	Recent []models.Invoice `json:"recent"`
}

// RecentLimit is how many invoices Summary lists.
const RecentLimit = 5

// ComputeTotals returns net, VAT and gross amounts for an invoice from its items.
func (s *InvoiceService) ComputeTotals(inv *models.Invoice) (net, vat, gross decimal.Decimal) {
	if inv == nil {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	net, vat = decimal.Zero, decimal.Zero
	for i := range inv.Items {
		net = net.Add(inv.Items[i].TotalNet())
		vat = vat.Add(inv.Items[i].TotalVAT())
	}
	return net, vat, net.Add(vat)
}

// Revenue sums the gross amount of paid invoices per currency.
func (s *InvoiceService) Revenue(ctx context.Context) ([]Amount, error) {
	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return s.sum(invoices, func(inv *models.Invoice) bool { return inv.IsPaid() }), nil
}

// Summary counts records and sums invoice amounts.
func (s *InvoiceService) Summary(ctx context.Context) (Summary, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return Summary{}, err
	}
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return Summary{}, err
	}
	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		return Summary{}, err
	}

	today := s.clock.Now().UTC().Truncate(24 * time.Hour)
	sum := Summary{
		Products: len(products),
		Clients:  len(clients),
		Invoices: len(invoices),
	}
	for i := range invoices {
		if invoices[i].IsPaid() {
			continue
		}
		sum.Unpaid++
		if !invoices[i].DueDate.IsZero() && invoices[i].DueDate.Before(today) {
			sum.Overdue++
		}
	}
	sum.Revenue = s.sum(invoices, func(inv *models.Invoice) bool { return inv.IsPaid() })
	sum.Outstanding = s.sum(invoices, func(inv *models.Invoice) bool { return !inv.IsPaid() })

	if len(invoices) > RecentLimit {
		invoices = invoices[:RecentLimit]
	}
	sum.Recent = invoices
	return sum, nil
}

func (s *InvoiceService) sum(invoices []models.Invoice, include func(*models.Invoice) bool) []Amount {
	totals := map[string]decimal.Decimal{}
	for i := range invoices {
		inv := &invoices[i]
		if !include(inv) {
			continue
		}
		cur := inv.Currency
		if cur == "" {
			cur = models.DefaultCurrency
		}
		_, _, gross := s.ComputeTotals(inv)
		totals[cur] = totals[cur].Add(gross)
	}
	out := make([]Amount, 0, len(totals))
	for cur, total := range totals {
		out = append(out, Amount{Currency: cur, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}
