package reports

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// Repository defines report data access. All date bucketing happens in
// the configured reporting timezone; month keys use "2006-01" form.
type Repository interface {
	// ItemReport left-joins items against aggregated sale quantities.
	// normalizedName filters to one item when non-empty. Ascending by name.
	ItemReport(ctx context.Context, ownerID id.ID, normalizedName string) ([]ItemReportRow, error)

	// SalesBetween returns sales whose creation date, in the reporting
	// timezone, falls within [fromDate, toDate] inclusive ("2006-01-02"
	// strings). Ascending by creation time.
	SalesBetween(ctx context.Context, ownerID id.ID, fromDate, toDate string) ([]SalesReportRow, error)

	// TotalStockValue sums quantity x selling_rate over all items.
	TotalStockValue(ctx context.Context, ownerID id.ID) (types.Money, error)

	// TotalSalesValue sums total_price over all sales, all time.
	TotalSalesValue(ctx context.Context, ownerID id.ID) (types.Money, error)

	// MonthSalesValue sums total_price for one calendar month.
	MonthSalesValue(ctx context.Context, ownerID id.ID, monthKey string) (types.Money, error)

	// MonthlyTotals returns per-month sale sums keyed by month, for months
	// at or after fromMonthKey. Months without sales are absent; the
	// service gap-fills them.
	MonthlyTotals(ctx context.Context, ownerID id.ID, fromMonthKey string) (map[string]types.Money, error)
}
