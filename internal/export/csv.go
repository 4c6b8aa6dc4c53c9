package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
)

// CSVExporter writes one row per line item followed by the totals.
type CSVExporter struct{}

func (CSVExporter) Export(ctx context.Context, doc Document) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		doc.label("doc.number"),
		doc.label("doc.description"),
		doc.label("doc.quantity"),
		doc.label("doc.unit_price"),
		doc.label("doc.vat_rate"),
		doc.label("doc.net"),
		doc.label("doc.vat"),
		doc.label("doc.gross"),
	}
	if err := w.Write(header); err != nil {
		return Artifact{}, fmt.Errorf("csv header: %w", err)
	}
	for _, line := range doc.Lines {
		row := []string{
			doc.Invoice.Number,
			line.Description,
			line.Quantity.String(),
			line.UnitPrice.StringFixed(2),
			line.VATRate.String(),
			line.TotalNet().StringFixed(2),
			line.TotalVAT().StringFixed(2),
			line.TotalGross().StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return Artifact{}, fmt.Errorf("csv line: %w", err)
		}
	}
	net, vat, gross := doc.Totals()
	totals := [][]string{
		{doc.label("doc.net"), net.StringFixed(2), doc.Currency()},
		{doc.label("doc.vat"), vat.StringFixed(2), doc.Currency()},
		{doc.label("doc.gross"), gross.StringFixed(2), doc.Currency()},
	}
	if err := w.WriteAll(totals); err != nil {
		return Artifact{}, fmt.Errorf("csv totals: %w", err)
	}
	return doc.artifact(FormatCSV, buf.Bytes()), nil
}
