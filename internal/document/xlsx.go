package document

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderXLSX renders the table as a single-sheet workbook: merged title
// row, bold bordered header, then data rows.
func RenderXLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	lastCol, err := excelize.ColumnNumberToName(max(len(t.Headers), 1))
	if err != nil {
		return nil, fmt.Errorf("resolve last column: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	if err := f.SetCellValue(sheet, "A1", t.Title); err != nil {
		return nil, fmt.Errorf("set title: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle); err != nil {
		return nil, fmt.Errorf("style title: %w", err)
	}

	headerCells := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A2", &headerCells); err != nil {
		return nil, fmt.Errorf("set header row: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A2", lastCol+"2", headerStyle); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	rowIdx := 3
	for _, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return nil, fmt.Errorf("row has %d cells, want %d", len(row), len(t.Headers))
		}
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowIdx), &cells); err != nil {
			return nil, fmt.Errorf("set row %d: %w", rowIdx, err)
		}
		rowIdx++
	}

	if len(t.Footer) > 0 {
		cells := make([]any, len(t.Footer))
		for i, cell := range t.Footer {
			cells[i] = cell
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowIdx), &cells); err != nil {
			return nil, fmt.Errorf("set footer row: %w", err)
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("%s%d", lastCol, rowIdx), headerStyle); err != nil {
			return nil, fmt.Errorf("style footer row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
