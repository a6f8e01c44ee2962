// Package document renders report tables into downloadable documents.
// Reports stay live; only their presentation is materialized here.
package document

// Table is the presentation-neutral shape every exported report reduces
// to before rendering.
type Table struct {
	Title   string
	Headers []string

	// Widths are relative column widths for the PDF layout. When empty,
	// columns share the page width evenly.
	Widths []float64

	Rows [][]string

	// Footer is an optional summary row, rendered emphasized.
	Footer []string
}

// columnWidths resolves relative widths against the printable width.
func (t Table) columnWidths(printable float64) []float64 {
	n := len(t.Headers)
	if n == 0 {
		return nil
	}

	widths := make([]float64, n)

	var sum float64
	for _, w := range t.Widths {
		sum += w
	}
	// Mismatched or degenerate widths fall back to an even split.
	if len(t.Widths) != n || sum <= 0 {
		for i := range widths {
			widths[i] = printable / float64(n)
		}
		return widths
	}
	for i, w := range t.Widths {
		widths[i] = printable * w / sum
	}
	return widths
}
