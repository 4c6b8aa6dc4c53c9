package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// PDFExporter renders a printable A4 invoice.
type PDFExporter struct{}

var pdfColumns = []struct {
	code  string
	width float64
	align string
}{
	{"doc.description", 70, "L"},
	{"doc.quantity", 18, "R"},
	{"doc.unit_price", 26, "R"},
	{"doc.vat_rate", 16, "R"},
	{"doc.net", 25, "R"},
	{"doc.gross", 25, "R"},
}

func (PDFExporter) Export(ctx context.Context, doc Document) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.label("doc.invoice")+" "+doc.Invoice.Number, true)
	pdf.SetCreator("invoicedesk", false)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(doc.label("doc.invoice")+" "+doc.Invoice.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(doc.label("doc.issue_date")+": "+doc.date(doc.Invoice.IssueDate)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(doc.label("doc.due_date")+": "+doc.date(doc.Invoice.DueDate)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Parties
	top := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 6, tr(doc.label("doc.supplier")), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, tr(doc.label("doc.customer")), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	supplier := doc.Company.Name + "\n" + doc.Company.FullAddress()
	if doc.Company.ICONumber != "" {
		supplier += "\n" + doc.label("field.ico") + ": " + doc.Company.ICONumber
	}
	if doc.Company.VATNumber != "" {
		supplier += "\n" + doc.label("field.dic") + ": " + doc.Company.VATNumber
	}
	customer := doc.Client.Name
	if doc.Client.Address != "" {
		customer += "\n" + doc.Client.Address
	}
	if id := doc.Client.TaxIDDisplay(); id != "" {
		customer += "\n" + id
	}
	pdf.SetXY(10, top+6)
	pdf.MultiCell(95, 5, tr(supplier), "", "L", false)
	left := pdf.GetY()
	pdf.SetXY(105, top+6)
	pdf.MultiCell(95, 5, tr(customer), "", "L", false)
	if pdf.GetY() < left {
		pdf.SetY(left)
	}
	pdf.Ln(6)

	// Lines
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, tr(doc.label(col.code)), "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range doc.Lines {
		cells := []string{
			line.Description,
			line.Quantity.String(),
			line.UnitPrice.StringFixed(2),
			line.VATRate.String(),
			line.TotalNet().StringFixed(2),
			line.TotalGross().StringFixed(2),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, tr(cells[i]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// Totals
	net, vat, gross := doc.Totals()
	totals := []struct{ code, value string }{
		{"doc.net", net.StringFixed(2)},
		{"doc.vat", vat.StringFixed(2)},
		{"doc.gross", gross.StringFixed(2)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		}
		pdf.CellFormat(130, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, tr(doc.label(t.code)), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, tr(t.value+" "+doc.Currency()), "", 1, "R", false, 0, "")
	}

	if doc.Template != TemplateCompact && (doc.Company.BankAccount != "" || doc.Company.IBAN != "") {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		account := doc.Company.BankAccount
		if doc.Company.IBAN != "" {
			account = fmt.Sprintf("%s  IBAN %s", account, doc.Company.IBAN)
		}
		pdf.CellFormat(0, 5, tr(doc.label("doc.bank_account")+": "+account), "", 1, "L", false, 0, "")
	}
	if doc.Invoice.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 5, tr(doc.Invoice.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("render pdf: %w", err)
	}
	return doc.artifact(FormatPDF, buf.Bytes()), nil
}
