package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 12.0
	pdfRowHeight = 7.0
)

// RenderPDF renders the table as an A4 portrait PDF. The header row is
// repeated after every page break.
func RenderPDF(t Table) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	printable := pageW - 2*pdfMargin
	widths := t.columnWidths(printable)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(printable, 10, t.Title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range t.Headers {
			pdf.CellFormat(widths[i], pdfRowHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	drawHeader()

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return nil, fmt.Errorf("row has %d cells, want %d", len(row), len(t.Headers))
		}
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Helvetica", "", 10)
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], pdfRowHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(t.Footer) > 0 {
		if len(t.Footer) != len(t.Headers) {
			return nil, fmt.Errorf("footer has %d cells, want %d", len(t.Footer), len(t.Headers))
		}
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			drawHeader()
		}
		pdf.SetFont("Helvetica", "B", 10)
		for i, cell := range t.Footer {
			pdf.CellFormat(widths[i], pdfRowHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
