package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid    InvoiceStatus = "unpaid"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusPartial, InvoiceStatusCancelled:
		return true
	}
	return false
}

// DefaultCurrency is used for invoices created without an explicit currency.
const DefaultCurrency = "CZK"

// Invoice represents a billing invoice.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Invoice identification
	Number string `gorm:"size:50;uniqueIndex" json:"number"`

	// Client relationship
	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"client,omitempty"`

	// Invoice dates
	IssueDate time.Time `gorm:"not null" json:"issue_date"`
	DueDate   time.Time `gorm:"not null" json:"due_date"`

	Status   InvoiceStatus `gorm:"size:20;default:'unpaid'" json:"status"`
	Currency string        `gorm:"size:3;default:'CZK'" json:"currency"`
	Notes    string        `gorm:"type:text" json:"notes,omitempty"`

	// Invoice items, ordered by Position
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`

	// Totals are derived from Items by Recalculate and stored for listing.
	TotalNet   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_net"`
	TotalVAT   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_vat"`
	TotalGross decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_gross"`
}

// IsPaid returns true if the invoice has been settled.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// Recalculate refreshes every line total and the invoice totals.
// VAT is computed per line and added on top of the net amount.
func (i *Invoice) Recalculate() {
	net, vat := decimal.Zero, decimal.Zero
	for idx := range i.Items {
		item := &i.Items[idx]
		item.Position = idx
		item.LineTotal = item.TotalNet()
		net = net.Add(item.LineTotal)
		vat = vat.Add(item.TotalVAT())
	}
	i.TotalNet = net
	i.TotalVAT = vat
	i.TotalGross = net.Add(vat)
}

// InvoiceItem represents a line item on an invoice.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	// Optional product reference (nil for custom lines)
	ProductID *uint `gorm:"index" json:"product_id,omitempty"`

	// Item details (copied from product or custom)
	Description string          `gorm:"size:500;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	VATRate     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"line_total"`

	// Position for ordering
	Position int `gorm:"default:0" json:"position"`
}

// TotalNet calculates the line total excluding VAT.
func (item *InvoiceItem) TotalNet() decimal.Decimal {
	return item.Quantity.Mul(item.UnitPrice).Round(2)
}

// TotalVAT calculates the VAT amount for this line.
func (item *InvoiceItem) TotalVAT() decimal.Decimal {
	return item.TotalNet().Mul(item.VATRate).Div(hundred).Round(2)
}

// TotalGross calculates the line total including VAT.
func (item *InvoiceItem) TotalGross() decimal.Decimal {
	return item.TotalNet().Add(item.TotalVAT())
}

// InvoiceNumberPrefix returns the number prefix shared by all invoices issued in year.
func InvoiceNumberPrefix(year int) string {
	return fmt.Sprintf("INV-%d-", year)
}

// FormatInvoiceNumber formats the seq-th invoice number of a year.
// Format: INV-YYYY-NNNN (e.g., INV-2025-0001)
func FormatInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("%s%04d", InvoiceNumberPrefix(year), seq)
}
