package export

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/invoicedesk/i18n"
	"github.com/diewo77/invoicedesk/internal/models"
)

// TemplateStandard is the default document layout.
const TemplateStandard = "standard"

// TemplateCompact leaves out the payment block.
const TemplateCompact = "compact"

// Document is everything an exporter needs to render one invoice.
type Document struct {
	Invoice  models.Invoice
	Company  models.CompanySettings
	Client   models.Client
	Lines    []models.InvoiceItem
	Locale   string
	Template string
}

// Artifact is one rendered file.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Totals returns net, VAT and gross computed from the lines.
func (d Document) Totals() (net, vat, gross decimal.Decimal) {
	inv := models.Invoice{Items: d.Lines}
	inv.Recalculate()
	return inv.TotalNet, inv.TotalVAT, inv.TotalGross
}

// Currency returns the invoice currency or the default one.
func (d Document) Currency() string {
	if d.Invoice.Currency != "" {
		return d.Invoice.Currency
	}
	return models.DefaultCurrency
}

func (d Document) label(code string) string { return i18n.T(d.Locale, code) }

func (d Document) tf(code string, args ...any) string { return i18n.Tf(d.Locale, code, args...) }

func (d Document) date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout(d.Locale))
}

func dateLayout(locale string) string {
	switch locale {
	case "cs", "pl":
		return "02.01.2006"
	}
	return "2006-01-02"
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (d Document) filename(f Format) string {
	name := d.Invoice.Number
	if name == "" {
		name = fmt.Sprintf("%d", d.Invoice.ID)
	}
	return "invoice-" + unsafeFilename.ReplaceAllString(name, "_") + "." + f.Extension()
}

func (d Document) artifact(f Format, data []byte) Artifact {
	return Artifact{Filename: d.filename(f), ContentType: f.ContentType(), Data: data}
}
