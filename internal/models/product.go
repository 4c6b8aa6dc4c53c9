package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultVATRate is the VAT percentage applied to new products.
var DefaultVATRate = decimal.NewFromInt(21)

var hundred = decimal.NewFromInt(100)

// Product represents a product or service that can be put on an invoice.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Product information
	Code        string          `gorm:"size:50;index" json:"code"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`

	// VAT rate stored as a percentage (21 = 21%)
	VATRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
}

// VATAmount returns the VAT amount for one unit.
func (p *Product) VATAmount() decimal.Decimal {
	return p.UnitPrice.Mul(p.VATRate).Div(hundred).Round(2)
}

// PriceWithVAT returns the unit price including VAT.
func (p *Product) PriceWithVAT() decimal.Decimal {
	return p.UnitPrice.Add(p.VATAmount())
}
