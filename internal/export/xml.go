package export

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
)

type xmlParty struct {
	Name    string `xml:"name"`
	Address string `xml:"address,omitempty"`
	Country string `xml:"country,omitempty"`
	TaxID   string `xml:"taxId,omitempty"`
	Email   string `xml:"email,omitempty"`
}

type xmlLine struct {
	Position    int    `xml:"position,attr"`
	Description string `xml:"description"`
	Quantity    string `xml:"quantity"`
	UnitPrice   string `xml:"unitPrice"`
	VATRate     string `xml:"vatRate"`
	Net         string `xml:"net"`
	VAT         string `xml:"vat"`
	Gross       string `xml:"gross"`
}

type xmlTotals struct {
	Net   string `xml:"net"`
	VAT   string `xml:"vat"`
	Gross string `xml:"gross"`
}

type xmlInvoice struct {
	XMLName   xml.Name  `xml:"invoice"`
	Number    string    `xml:"number,attr"`
	Currency  string    `xml:"currency,attr"`
	Status    string    `xml:"status,attr"`
	IssueDate string    `xml:"issueDate"`
	DueDate   string    `xml:"dueDate"`
	Supplier  xmlParty  `xml:"supplier"`
	Customer  xmlParty  `xml:"customer"`
	Lines     []xmlLine `xml:"lines>line"`
	Totals    xmlTotals `xml:"totals"`
	Notes     string    `xml:"notes,omitempty"`
}

// XMLExporter writes an <invoice> document.
type XMLExporter struct{}

func (XMLExporter) Export(ctx context.Context, doc Document) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	net, vat, gross := doc.Totals()
	companyTaxID := doc.Company.VATNumber
	if companyTaxID == "" {
		companyTaxID = doc.Company.ICONumber
	}
	out := xmlInvoice{
		Number:    doc.Invoice.Number,
		Currency:  doc.Currency(),
		Status:    string(doc.Invoice.Status),
		IssueDate: doc.Invoice.IssueDate.Format("2006-01-02"),
		DueDate:   doc.Invoice.DueDate.Format("2006-01-02"),
		Supplier: xmlParty{
			Name:    doc.Company.Name,
			Address: doc.Company.FullAddress(),
			Country: doc.Company.Country,
			TaxID:   companyTaxID,
			Email:   doc.Company.Email,
		},
		Customer: xmlParty{
			Name:    doc.Client.Name,
			Address: doc.Client.Address,
			Country: doc.Client.Country,
			TaxID:   doc.Client.TaxIDDisplay(),
			Email:   doc.Client.Email,
		},
		Totals: xmlTotals{Net: net.StringFixed(2), VAT: vat.StringFixed(2), Gross: gross.StringFixed(2)},
		Notes:  doc.Invoice.Notes,
	}
	for i, line := range doc.Lines {
		out.Lines = append(out.Lines, xmlLine{
			Position:    i + 1,
			Description: line.Description,
			Quantity:    line.Quantity.String(),
			UnitPrice:   line.UnitPrice.StringFixed(2),
			VATRate:     line.VATRate.String(),
			Net:         line.TotalNet().StringFixed(2),
			VAT:         line.TotalVAT().StringFixed(2),
			Gross:       line.TotalGross().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return Artifact{}, fmt.Errorf("encode xml: %w", err)
	}
	return doc.artifact(FormatXML, buf.Bytes()), nil
}
