package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Invoice"

// XLSXExporter writes a single-sheet workbook with a header block, one row
// per line item and formula totals.
type XLSXExporter struct{}

func (XLSXExporter) Export(ctx context.Context, doc Document) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return Artifact{}, fmt.Errorf("xlsx sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return Artifact{}, fmt.Errorf("xlsx style: %w", err)
	}

	set := func(cell string, v any) {
		if err == nil {
			err = f.SetCellValue(xlsxSheet, cell, v)
		}
	}

	set("A1", doc.label("doc.invoice"))
	set("B1", doc.Invoice.Number)
	set("A2", doc.label("doc.issue_date"))
	set("B2", doc.date(doc.Invoice.IssueDate))
	set("A3", doc.label("doc.due_date"))
	set("B3", doc.date(doc.Invoice.DueDate))
	set("A4", doc.label("doc.supplier"))
	set("B4", doc.Company.Name)
	set("A5", doc.label("doc.customer"))
	set("B5", doc.Client.Name)

	const headerRow = 7
	headers := []string{"doc.description", "doc.quantity", "doc.unit_price", "doc.vat_rate", "doc.net", "doc.vat", "doc.gross"}
	for i, code := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		set(cell, doc.label(code))
	}

	row := headerRow
	for _, line := range doc.Lines {
		row++
		values := []any{
			line.Description,
			line.Quantity.InexactFloat64(),
			line.UnitPrice.InexactFloat64(),
			line.VATRate.InexactFloat64(),
			line.TotalNet().InexactFloat64(),
			line.TotalVAT().InexactFloat64(),
			line.TotalGross().InexactFloat64(),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			set(cell, v)
		}
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("xlsx cells: %w", err)
	}

	totalRow := row + 2
	set(fmt.Sprintf("D%d", totalRow), doc.Currency())
	if err != nil {
		return Artifact{}, fmt.Errorf("xlsx cells: %w", err)
	}
	for _, col := range []string{"E", "F", "G"} {
		cell := fmt.Sprintf("%s%d", col, totalRow)
		formula := fmt.Sprintf("SUM(%s%d:%s%d)", col, headerRow+1, col, max(row, headerRow+1))
		if err := f.SetCellFormula(xlsxSheet, cell, formula); err != nil {
			return Artifact{}, fmt.Errorf("xlsx totals: %w", err)
		}
	}

	if err := f.SetCellStyle(xlsxSheet, "A1", "A5", bold); err != nil {
		return Artifact{}, fmt.Errorf("xlsx style: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("G%d", headerRow), bold); err != nil {
		return Artifact{}, fmt.Errorf("xlsx style: %w", err)
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 40); err != nil {
		return Artifact{}, fmt.Errorf("xlsx layout: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Artifact{}, fmt.Errorf("xlsx write: %w", err)
	}
	return doc.artifact(FormatXLSX, buf.Bytes()), nil
}
