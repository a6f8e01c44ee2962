package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/reports"
)

// Compile-time check that ReportRepo implements reports.Repository.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository. Date bucketing converts the
// UTC timestamps to the configured reporting timezone before taking the
// civil date or month, so day boundaries match the business's clock.
type ReportRepo struct {
	txManager *TxManager
	timezone  string // IANA name, passed to AT TIME ZONE
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *TxManager, timezone string) *ReportRepo {
	return &ReportRepo{txManager: txManager, timezone: timezone}
}

// itemReportQuery builds the item report statement: items left-joined
// against aggregated sale quantities, so items that never sold still
// appear with a zero sold quantity.
func itemReportQuery(ownerID id.ID, normalizedName string) (string, []any) {
	query := `
		SELECT
			i.name AS item_name,
			i.quantity AS available_qty,
			i.selling_rate AS selling_rate,
			COALESCE(s.sold_qty, 0) AS sold_qty
		FROM items i
		LEFT JOIN (
			SELECT item_id, SUM(quantity) AS sold_qty
			FROM sales
			WHERE owner_id = $1
			GROUP BY item_id
		) s ON s.item_id = i.id
		WHERE i.owner_id = $1
	`
	args := []any{ownerID}

	if normalizedName != "" {
		query += ` AND lower(i.name) = $2`
		args = append(args, normalizedName)
	}
	query += ` ORDER BY i.name ASC`

	return query, args
}

// salesBetweenQuery bounds the creation date, converted to the reporting
// timezone, inclusively on both ends.
const salesBetweenQuery = `
		SELECT
			s.created_at,
			i.name AS item_name,
			s.quantity,
			s.selling_price,
			s.total_price
		FROM sales s
		JOIN items i ON i.id = s.item_id
		WHERE s.owner_id = $1
		  AND (s.created_at AT TIME ZONE $2)::date BETWEEN $3::date AND $4::date
		ORDER BY s.created_at ASC
	`

// ItemReport returns the item-wise stock and sold quantities, optionally
// filtered to one normalized name.
func (r *ReportRepo) ItemReport(ctx context.Context, ownerID id.ID, normalizedName string) ([]reports.ItemReportRow, error) {
	query, args := itemReportQuery(ownerID, normalizedName)

	var rows []reports.ItemReportRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("item report: %w", err))
	}

	return rows, nil
}

// SalesBetween returns sales whose creation date, in the reporting
// timezone, falls within [fromDate, toDate] inclusive.
func (r *ReportRepo) SalesBetween(ctx context.Context, ownerID id.ID, fromDate, toDate string) ([]reports.SalesReportRow, error) {
	var rows []reports.SalesReportRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, salesBetweenQuery, ownerID, r.timezone, fromDate, toDate); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("sales between: %w", err))
	}

	return rows, nil
}

// TotalStockValue sums quantity x selling_rate over the owner's items.
func (r *ReportRepo) TotalStockValue(ctx context.Context, ownerID id.ID) (types.Money, error) {
	const query = `
		SELECT COALESCE(SUM(quantity * selling_rate), 0)
		FROM items
		WHERE owner_id = $1
	`
	return r.scanMoney(ctx, "total stock value", query, ownerID)
}

// TotalSalesValue sums total_price over all of the owner's sales.
func (r *ReportRepo) TotalSalesValue(ctx context.Context, ownerID id.ID) (types.Money, error) {
	const query = `
		SELECT COALESCE(SUM(total_price), 0)
		FROM sales
		WHERE owner_id = $1
	`
	return r.scanMoney(ctx, "total sales value", query, ownerID)
}

// MonthSalesValue sums total_price for one calendar month in the
// reporting timezone.
func (r *ReportRepo) MonthSalesValue(ctx context.Context, ownerID id.ID, monthKey string) (types.Money, error) {
	const query = `
		SELECT COALESCE(SUM(total_price), 0)
		FROM sales
		WHERE owner_id = $1
		  AND to_char(created_at AT TIME ZONE $2, 'YYYY-MM') = $3
	`
	return r.scanMoney(ctx, "month sales value", query, ownerID, r.timezone, monthKey)
}

// MonthlyTotals returns per-month sale sums keyed by "YYYY-MM" for months
// at or after fromMonthKey. Empty months are simply absent.
func (r *ReportRepo) MonthlyTotals(ctx context.Context, ownerID id.ID, fromMonthKey string) (map[string]types.Money, error) {
	const query = `
		SELECT
			to_char(created_at AT TIME ZONE $2, 'YYYY-MM') AS month_key,
			COALESCE(SUM(total_price), 0) AS total
		FROM sales
		WHERE owner_id = $1
		  AND to_char(created_at AT TIME ZONE $2, 'YYYY-MM') >= $3
		GROUP BY 1
	`

	querier := r.txManager.GetQuerier(ctx)
	rows, err := querier.Query(ctx, query, ownerID, r.timezone, fromMonthKey)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("monthly totals: %w", err))
	}
	defer rows.Close()

	totals := make(map[string]types.Money)
	for rows.Next() {
		var key string
		var total types.Money
		if err := rows.Scan(&key, &total); err != nil {
			return nil, apperror.NewDatabase(fmt.Errorf("scan monthly total: %w", err))
		}
		totals[key] = total
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("monthly totals: %w", err))
	}

	return totals, nil
}

func (r *ReportRepo) scanMoney(ctx context.Context, op, query string, args ...any) (types.Money, error) {
	var value types.Money
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return types.Zero(), apperror.NewDatabase(fmt.Errorf("%s: %w", op, err))
	}
	return value, nil
}
