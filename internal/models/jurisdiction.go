package models

import (
	"regexp"
	"strings"

	"github.com/diewo77/invoicedesk/validation"
)

// TaxField describes one editable tax identifier input.
type TaxField struct {
	Key   string `json:"key"`   // client JSON field the value is stored in
	Label string `json:"label"` // i18n code
}

var (
	fieldNIP = TaxField{Key: "nip_number", Label: "field.nip"}
	fieldICO = TaxField{Key: "ico_number", Label: "field.ico"}
	fieldDIC = TaxField{Key: "vat_number", Label: "field.dic"}
	fieldVAT = TaxField{Key: "vat_number", Label: "field.vat"}
)

var (
	nipPattern = regexp.MustCompile(`^\d{10}$`)
	icoPattern = regexp.MustCompile(`^\d{8}$`)
	vatPattern = regexp.MustCompile(`^[A-Z]{2}[0-9A-Z]{2,13}$`)
)

// TaxIdentity is the set of tax identifiers a client carries in its
// jurisdiction. The variants are PolishIdentity, CzechIdentity and
// GenericIdentity.
type TaxIdentity interface {
	// Country returns the ISO country code of the jurisdiction.
	Country() string
	// Fields lists the editable inputs, in form order.
	Fields() []TaxField
	// Display returns the identifier shown in list views.
	Display() string
	// Validate records format violations for non-empty identifiers.
	Validate(v validation.Violations)

	taxIdentity()
}

// PolishIdentity carries the NIP (numer identyfikacji podatkowej).
type PolishIdentity struct {
	NIP string
}

func (PolishIdentity) Country() string    { return "PL" }
func (PolishIdentity) Fields() []TaxField { return []TaxField{fieldNIP} }
func (p PolishIdentity) Display() string  { return p.NIP }
func (PolishIdentity) taxIdentity()       {}
func (p PolishIdentity) Validate(v validation.Violations) {
	validation.Pattern(fieldNIP.Key, digitsOnly(p.NIP), nipPattern, "invalid_nip", v)
}

// CzechIdentity carries the IČO registration number and the DIČ VAT number.
type CzechIdentity struct {
	ICO string
	DIC string
}

func (CzechIdentity) Country() string    { return "CZ" }
func (CzechIdentity) Fields() []TaxField { return []TaxField{fieldICO, fieldDIC} }
func (CzechIdentity) taxIdentity()       {}

func (c CzechIdentity) Display() string {
	if c.ICO != "" {
		return c.ICO
	}
	return c.DIC
}

func (c CzechIdentity) Validate(v validation.Violations) {
	validation.Pattern(fieldICO.Key, digitsOnly(c.ICO), icoPattern, "invalid_ico", v)
	validation.Pattern(fieldDIC.Key, compactVAT(c.DIC), vatPattern, "invalid_vat", v)
}

// GenericIdentity carries a VAT number for every other jurisdiction.
type GenericIdentity struct {
	CountryCode string
	VATNumber   string
}

func (g GenericIdentity) Country() string  { return g.CountryCode }
func (GenericIdentity) Fields() []TaxField { return []TaxField{fieldVAT} }
func (g GenericIdentity) Display() string  { return g.VATNumber }
func (GenericIdentity) taxIdentity()       {}
func (g GenericIdentity) Validate(v validation.Violations) {
	validation.Pattern(fieldVAT.Key, compactVAT(g.VATNumber), vatPattern, "invalid_vat", v)
}

// TaxFieldsFor returns the identifier inputs shown for a country.
func TaxFieldsFor(country string) []TaxField {
	c := Client{Country: country}
	return c.TaxIdentity().Fields()
}

func normalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// digitsOnly drops the separators people commonly type into registration
// numbers (123-456-78-90). Anything else is kept so the pattern rejects it.
func digitsOnly(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(s))
}

func compactVAT(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
