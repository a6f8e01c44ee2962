package reports

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/items"
)

// DefaultSeriesWindow is the chart window: the current month plus the
// twelve before it.
const DefaultSeriesWindow = 13

// Service generates reports. It holds the single reporting timezone used
// by every date-bucketing operation, so report boundaries do not depend
// on the host's local time.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
	loc       *time.Location

	// now is replaceable in tests.
	now func() time.Time
}

// NewService creates a new reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		loc:       loc,
		now:       time.Now,
	}
}

// ItemReport produces the item-wise stock and sales report, optionally
// filtered to one item name (case and whitespace insensitive). Items
// with no sales appear with sold_qty zero.
func (s *Service) ItemReport(ctx context.Context, ownerID id.ID, nameFilter string) ([]ItemReportRow, error) {
	rows, err := s.repo.ItemReport(ctx, ownerID, items.NormalizeName(nameFilter))
	if err != nil {
		return nil, fmt.Errorf("item report: %w", err)
	}
	return rows, nil
}

// SalesReport returns all sales whose creation date falls within
// [from, to] inclusive, evaluated in the reporting timezone. Both bounds
// are required "2006-01-02" dates.
func (s *Service) SalesReport(ctx context.Context, ownerID id.ID, from, to string) (*SalesReport, error) {
	if from == "" || to == "" {
		return nil, apperror.NewValidation("date range is required").
			WithDetail("from", from).
			WithDetail("to", to)
	}
	fromDate, err := time.ParseInLocation(dateLayout, from, s.loc)
	if err != nil {
		return nil, apperror.NewValidation("invalid from date, expected YYYY-MM-DD").WithDetail("from", from)
	}
	toDate, err := time.ParseInLocation(dateLayout, to, s.loc)
	if err != nil {
		return nil, apperror.NewValidation("invalid to date, expected YYYY-MM-DD").WithDetail("to", to)
	}
	if fromDate.After(toDate) {
		return nil, apperror.NewValidation("from date must not be after to date").
			WithDetail("from", from).
			WithDetail("to", to)
	}

	rows, err := s.repo.SalesBetween(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}

	grandTotal := types.Zero()
	for _, r := range rows {
		grandTotal = grandTotal.Add(r.TotalPrice)
	}

	return &SalesReport{
		From:       from,
		To:         to,
		Rows:       rows,
		GrandTotal: grandTotal,
	}, nil
}

// AnalyticsSummary returns current stock value, all-time sales value and
// current-calendar-month sales value. The three queries share one
// read-only snapshot so the figures are mutually consistent.
func (s *Service) AnalyticsSummary(ctx context.Context, ownerID id.ID) (*AnalyticsSummary, error) {
	var summary AnalyticsSummary
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		totalStock, err := s.repo.TotalStockValue(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("total stock value: %w", err)
		}

		totalSales, err := s.repo.TotalSalesValue(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("total sales value: %w", err)
		}

		currentMonth := s.now().In(s.loc).Format(monthKeyLayout)
		monthlySales, err := s.repo.MonthSalesValue(ctx, ownerID, currentMonth)
		if err != nil {
			return fmt.Errorf("monthly sales value: %w", err)
		}

		summary = AnalyticsSummary{
			TotalStock:   totalStock,
			TotalSales:   totalSales,
			MonthlySales: monthlySales,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// MonthlySalesSeries returns the most recent window calendar months
// ending at the current month, oldest first, gap-filled with zeros.
// The month scaffold is generated here, independently of which months
// have transactions, then left-joined against the aggregated sums.
// The window is clamped to [1, DefaultSeriesWindow].
func (s *Service) MonthlySalesSeries(ctx context.Context, ownerID id.ID, window int) ([]MonthlySalesPoint, error) {
	if window <= 0 || window > DefaultSeriesWindow {
		window = DefaultSeriesWindow
	}

	months := s.monthScaffold(window)
	totals, err := s.repo.MonthlyTotals(ctx, ownerID, months[0].Format(monthKeyLayout))
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}

	series := make([]MonthlySalesPoint, 0, window)
	for _, m := range months {
		total, ok := totals[m.Format(monthKeyLayout)]
		if !ok {
			total = types.Zero()
		}
		series = append(series, MonthlySalesPoint{
			Month:      m.Format(monthLabelLayout),
			TotalSales: total,
		})
	}

	return series, nil
}

// monthScaffold lists the first instants of the window months ending at
// the current month in the reporting timezone, oldest first.
func (s *Service) monthScaffold(window int) []time.Time {
	nowLocal := s.now().In(s.loc)
	current := time.Date(nowLocal.Year(), nowLocal.Month(), 1, 0, 0, 0, 0, s.loc)

	months := make([]time.Time, 0, window)
	for i := window - 1; i >= 0; i-- {
		months = append(months, current.AddDate(0, -i, 0))
	}
	return months
}
