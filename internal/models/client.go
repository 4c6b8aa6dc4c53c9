package models

import (
	"time"
)

// ClientType distinguishes private persons from businesses.
type ClientType string

const (
	ClientTypeIndividual ClientType = "individual"
	ClientTypeCompany    ClientType = "company"
)

// DefaultCountry is the country assumed for clients that do not state one.
const DefaultCountry = "CZ"

// Client represents a customer in the records.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// SchemaVersion tracks which upgrades have been applied to the row.
	SchemaVersion int `gorm:"not null;default:0" json:"schema_version"`

	// Client information
	Name    string     `gorm:"size:255;not null" json:"name"`
	Type    ClientType `gorm:"size:20" json:"client_type"`
	Address string     `gorm:"size:500" json:"address,omitempty"`
	Country string     `gorm:"size:2" json:"country"`
	Email   string     `gorm:"size:255" json:"email,omitempty"`
	Phone   string     `gorm:"size:50" json:"phone,omitempty"`
	Notes   string     `gorm:"type:text" json:"notes,omitempty"`

	// Tax information. Which fields are authoritative depends on Country,
	// see TaxIdentity.
	VATNumber string `gorm:"size:20" json:"vat_number,omitempty"`
	NIPNumber string `gorm:"size:20" json:"nip_number,omitempty"`
	ICONumber string `gorm:"size:20" json:"ico_number,omitempty"`
}

// TaxIdentity returns the jurisdiction variant selected by the client's country.
func (c *Client) TaxIdentity() TaxIdentity {
	switch normalizeCountry(c.Country) {
	case "PL":
		return PolishIdentity{NIP: c.NIPNumber}
	case "CZ":
		return CzechIdentity{ICO: c.ICONumber, DIC: c.VATNumber}
	default:
		return GenericIdentity{CountryCode: normalizeCountry(c.Country), VATNumber: c.VATNumber}
	}
}

// ApplyTaxIdentity writes the identifier fields of id back onto the client and
// sets the country accordingly. Fields owned by other jurisdictions are left alone.
func (c *Client) ApplyTaxIdentity(id TaxIdentity) {
	switch v := id.(type) {
	case PolishIdentity:
		c.Country = "PL"
		c.NIPNumber = v.NIP
	case CzechIdentity:
		c.Country = "CZ"
		c.ICONumber = v.ICO
		c.VATNumber = v.DIC
	case GenericIdentity:
		c.Country = normalizeCountry(v.CountryCode)
		c.VATNumber = v.VATNumber
	}
}

// TaxIDDisplay returns the identifier shown in the client list.
func (c *Client) TaxIDDisplay() string {
	return c.TaxIdentity().Display()
}
