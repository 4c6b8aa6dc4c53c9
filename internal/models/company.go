package models

import (
	"strings"
	"time"
)

// CompanySettings represents the issuing company printed on invoices.
type CompanySettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// IsDefault marks the profile used when issuing documents.
	IsDefault bool `gorm:"default:false" json:"is_default"`

	// Company information
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`
	Website string `gorm:"size:255" json:"website,omitempty"`

	// Address
	Address    string `gorm:"size:500" json:"address,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	PostalCode string `gorm:"size:20" json:"postal_code,omitempty"`
	Country    string `gorm:"size:2" json:"country,omitempty"`

	// Tax & legal information
	VATNumber string `gorm:"size:20" json:"vat_number,omitempty"`
	ICONumber string `gorm:"size:20" json:"ico_number,omitempty"`

	// Payment details
	BankAccount string `gorm:"size:50" json:"bank_account,omitempty"`
	IBAN        string `gorm:"size:34" json:"iban,omitempty"`

	// Branding
	LogoURL string `gorm:"size:500" json:"logo_url,omitempty"`
}

// FullAddress returns the formatted postal address.
func (c *CompanySettings) FullAddress() string {
	var lines []string
	if c.Address != "" {
		lines = append(lines, c.Address)
	}
	if city := strings.TrimSpace(c.PostalCode + " " + c.City); city != "" {
		lines = append(lines, city)
	}
	if c.Country != "" {
		lines = append(lines, c.Country)
	}
	return strings.Join(lines, "\n")
}

// IssuingCompany picks the company used for documents: the default profile,
// else the first one. It returns false when there is none.
func IssuingCompany(companies []CompanySettings) (CompanySettings, bool) {
	for _, c := range companies {
		if c.IsDefault {
			return c, true
		}
	}
	if len(companies) == 0 {
		return CompanySettings{}, false
	}
	return companies[0], true
}
