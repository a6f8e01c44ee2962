// Package reports provides the read-side aggregation layer: it joins the
// Item Store with the sale and debt ledgers to produce point-in-time
// reports. Reports are computed on demand and never cached.
package reports

import (
	"time"

	"stockbook/internal/core/types"
)

// ItemReportRow is one line of the item-wise stock and sales report.
// SoldQty is zero, not absent, for items that never sold.
type ItemReportRow struct {
	ItemName     string      `db:"item_name" json:"item_name"`
	AvailableQty types.Money `db:"available_qty" json:"available_qty"`
	SellingRate  types.Money `db:"selling_rate" json:"selling_rate"`
	SoldQty      types.Money `db:"sold_qty" json:"sold_qty"`
}

// SalesReportRow is one sale joined to its item name.
type SalesReportRow struct {
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	ItemName     string      `db:"item_name" json:"item_name"`
	Quantity     types.Money `db:"quantity" json:"quantity"`
	SellingPrice types.Money `db:"selling_price" json:"selling_price"`
	TotalPrice   types.Money `db:"total_price" json:"total_price"`
}

// SalesReport is the dated sales report with its grand total.
type SalesReport struct {
	From       string           `json:"from"`
	To         string           `json:"to"`
	Rows       []SalesReportRow `json:"rows"`
	GrandTotal types.Money      `json:"grand_total"`
}

// AnalyticsSummary holds the dashboard headline numbers.
// TotalStock is inventory value (quantity x selling rate), not sales.
type AnalyticsSummary struct {
	TotalStock   types.Money `json:"total_stock"`
	TotalSales   types.Money `json:"total_sales"`
	MonthlySales types.Money `json:"monthly_sales"`
}

// MonthlySalesPoint is one month of the trailing sales series.
// TotalSales is explicitly zero for months without sales.
type MonthlySalesPoint struct {
	Month      string      `json:"month"` // "Jan 2006"
	TotalSales types.Money `json:"total_sales"`
}

// monthKeyLayout keys months for the scaffold/aggregate join.
const monthKeyLayout = "2006-01"

// monthLabelLayout is the human label on series points.
const monthLabelLayout = "Jan 2006"

// dateLayout is the civil-date format for report bounds.
const dateLayout = "2006-01-02"
