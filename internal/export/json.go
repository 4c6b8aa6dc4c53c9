package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/invoicedesk/internal/models"
)

type jsonInvoice struct {
	ID        uint                 `json:"id"`
	Number    string               `json:"number"`
	IssueDate time.Time            `json:"issue_date"`
	DueDate   time.Time            `json:"due_date"`
	Status    models.InvoiceStatus `json:"status"`
	Currency  string               `json:"currency"`
	Notes     string               `json:"notes,omitempty"`
}

type jsonTotals struct {
	Net   decimal.Decimal `json:"net"`
	VAT   decimal.Decimal `json:"vat"`
	Gross decimal.Decimal `json:"gross"`
}

type jsonDocument struct {
	Invoice jsonInvoice            `json:"invoice"`
	Company models.CompanySettings `json:"company"`
	Client  models.Client          `json:"client"`
	Lines   []models.InvoiceItem   `json:"lines"`
	Totals  jsonTotals             `json:"totals"`
}

// JSONExporter writes the document as indented JSON.
type JSONExporter struct{}

func (JSONExporter) Export(ctx context.Context, doc Document) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	net, vat, gross := doc.Totals()
	lines := doc.Lines
	if lines == nil {
		lines = []models.InvoiceItem{}
	}
	out := jsonDocument{
		Invoice: jsonInvoice{
			ID:        doc.Invoice.ID,
			Number:    doc.Invoice.Number,
			IssueDate: doc.Invoice.IssueDate,
			DueDate:   doc.Invoice.DueDate,
			Status:    doc.Invoice.Status,
			Currency:  doc.Currency(),
			Notes:     doc.Invoice.Notes,
		},
		Company: doc.Company,
		Client:  doc.Client,
		Lines:   lines,
		Totals:  jsonTotals{Net: net, VAT: vat, Gross: gross},
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("encode json: %w", err)
	}
	return doc.artifact(FormatJSON, data), nil
}
