package reports

import (
	"context"
	"testing"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

type fakeReportRepo struct {
	monthlyTotals map[string]types.Money
	fromMonthKey  string
	salesRows     []SalesReportRow
	itemRows      []ItemReportRow
	nameFilter    string
}

func (r *fakeReportRepo) ItemReport(_ context.Context, _ id.ID, normalizedName string) ([]ItemReportRow, error) {
	r.nameFilter = normalizedName
	return r.itemRows, nil
}

func (r *fakeReportRepo) SalesBetween(context.Context, id.ID, string, string) ([]SalesReportRow, error) {
	return r.salesRows, nil
}

func (r *fakeReportRepo) TotalStockValue(context.Context, id.ID) (types.Money, error) {
	return types.MustMoney("5000"), nil
}

func (r *fakeReportRepo) TotalSalesValue(context.Context, id.ID) (types.Money, error) {
	return types.MustMoney("1200"), nil
}

func (r *fakeReportRepo) MonthSalesValue(context.Context, id.ID, string) (types.Money, error) {
	return types.MustMoney("300"), nil
}

func (r *fakeReportRepo) MonthlyTotals(_ context.Context, _ id.ID, fromMonthKey string) (map[string]types.Money, error) {
	r.fromMonthKey = fromMonthKey
	return r.monthlyTotals, nil
}

// passthroughTxManager runs callbacks directly, counting read-only use.
type passthroughTxManager struct {
	readOnlyCalls int
}

func (m *passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *passthroughTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.readOnlyCalls++
	return fn(ctx)
}

func newTestService(repo Repository, now time.Time) *Service {
	svc := NewService(repo, &passthroughTxManager{}, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

func TestMonthlySalesSeries_GapFilled(t *testing.T) {
	repo := &fakeReportRepo{
		monthlyTotals: map[string]types.Money{
			"2026-08": types.MustMoney("900"),
			"2026-03": types.MustMoney("150.50"),
		},
	}
	// Mid-month instant; scaffold must still snap to month starts.
	now := time.Date(2026, time.August, 17, 11, 30, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	series, err := svc.MonthlySalesSeries(context.Background(), id.New(), DefaultSeriesWindow)
	if err != nil {
		t.Fatalf("MonthlySalesSeries failed: %v", err)
	}

	if len(series) != DefaultSeriesWindow {
		t.Fatalf("expected %d points, got %d", DefaultSeriesWindow, len(series))
	}
	if repo.fromMonthKey != "2025-08" {
		t.Errorf("scaffold start = %s, want 2025-08", repo.fromMonthKey)
	}
	if series[0].Month != "Aug 2025" {
		t.Errorf("first month = %s, want Aug 2025", series[0].Month)
	}
	if series[len(series)-1].Month != "Aug 2026" {
		t.Errorf("last month = %s, want Aug 2026", series[len(series)-1].Month)
	}

	byMonth := make(map[string]types.Money, len(series))
	for _, p := range series {
		byMonth[p.Month] = p.TotalSales
	}
	if byMonth["Aug 2026"].String() != "900" {
		t.Errorf("Aug 2026 = %s, want 900", byMonth["Aug 2026"].String())
	}
	if byMonth["Mar 2026"].String() != "150.5" {
		t.Errorf("Mar 2026 = %s, want 150.5", byMonth["Mar 2026"].String())
	}
	// A month with no sales is present with an explicit zero.
	if !byMonth["Jan 2026"].IsZero() {
		t.Errorf("Jan 2026 = %s, want 0", byMonth["Jan 2026"].String())
	}
}

func TestMonthlySalesSeries_YearBoundary(t *testing.T) {
	repo := &fakeReportRepo{monthlyTotals: map[string]types.Money{}}
	now := time.Date(2026, time.January, 2, 0, 5, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	series, err := svc.MonthlySalesSeries(context.Background(), id.New(), 3)
	if err != nil {
		t.Fatalf("MonthlySalesSeries failed: %v", err)
	}

	want := []string{"Nov 2025", "Dec 2025", "Jan 2026"}
	for i, w := range want {
		if series[i].Month != w {
			t.Errorf("point %d = %s, want %s", i, series[i].Month, w)
		}
		if !series[i].TotalSales.IsZero() {
			t.Errorf("point %d total = %s, want 0", i, series[i].TotalSales.String())
		}
	}
}

func TestItemReport_UnsoldItemHasZeroSoldQty(t *testing.T) {
	repo := &fakeReportRepo{
		itemRows: []ItemReportRow{
			{ItemName: "Rice", AvailableQty: types.MustMoney("20"), SellingRate: types.MustMoney("55"), SoldQty: types.MustMoney("8")},
			{ItemName: "Tea Powder", AvailableQty: types.MustMoney("5"), SellingRate: types.MustMoney("120"), SoldQty: types.Zero()},
		},
	}
	svc := newTestService(repo, time.Now())

	rows, err := svc.ItemReport(context.Background(), id.New(), "")
	if err != nil {
		t.Fatalf("ItemReport failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// An item with no sales stays in the report with an explicit zero.
	if !rows[1].SoldQty.IsZero() {
		t.Errorf("unsold item sold_qty = %s, want 0", rows[1].SoldQty.String())
	}
}

func TestItemReport_NormalizesNameFilter(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestService(repo, time.Now())

	if _, err := svc.ItemReport(context.Background(), id.New(), "  Tea Powder "); err != nil {
		t.Fatalf("ItemReport failed: %v", err)
	}
	if repo.nameFilter != "tea powder" {
		t.Errorf("repo filter = %q, want %q", repo.nameFilter, "tea powder")
	}
}

func TestMonthlySalesSeries_WindowClamped(t *testing.T) {
	repo := &fakeReportRepo{monthlyTotals: map[string]types.Money{}}
	svc := newTestService(repo, time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC))

	for _, window := range []int{-1, 0, 10000} {
		series, err := svc.MonthlySalesSeries(context.Background(), id.New(), window)
		if err != nil {
			t.Fatalf("MonthlySalesSeries(%d) failed: %v", window, err)
		}
		if len(series) != DefaultSeriesWindow {
			t.Errorf("window %d: got %d points, want %d", window, len(series), DefaultSeriesWindow)
		}
	}
}

func TestSalesReport_Validation(t *testing.T) {
	svc := newTestService(&fakeReportRepo{}, time.Now())

	tests := []struct {
		name     string
		from, to string
	}{
		{"missing from", "", "2026-01-31"},
		{"missing to", "2026-01-01", ""},
		{"both missing", "", ""},
		{"malformed from", "01-01-2026", "2026-01-31"},
		{"malformed to", "2026-01-01", "31/01/2026"},
		{"inverted range", "2026-02-01", "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SalesReport(context.Background(), id.New(), tt.from, tt.to)
			if !apperror.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSalesReport_GrandTotal(t *testing.T) {
	repo := &fakeReportRepo{
		salesRows: []SalesReportRow{
			{TotalPrice: types.MustMoney("100.25")},
			{TotalPrice: types.MustMoney("49.75")},
			{TotalPrice: types.MustMoney("200")},
		},
	}
	svc := newTestService(repo, time.Now())

	report, err := svc.SalesReport(context.Background(), id.New(), "2026-01-01", "2026-01-01")
	if err != nil {
		t.Fatalf("SalesReport failed: %v", err)
	}

	if report.GrandTotal.String() != "350" {
		t.Errorf("grand total = %s, want 350", report.GrandTotal.String())
	}
	// Single-day range is valid: from == to.
	if report.From != "2026-01-01" || report.To != "2026-01-01" {
		t.Errorf("bounds echoed wrong: %s..%s", report.From, report.To)
	}
}

func TestAnalyticsSummary(t *testing.T) {
	txManager := &passthroughTxManager{}
	svc := NewService(&fakeReportRepo{}, txManager, time.UTC)
	svc.now = func() time.Time { return time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC) }

	summary, err := svc.AnalyticsSummary(context.Background(), id.New())
	if err != nil {
		t.Fatalf("AnalyticsSummary failed: %v", err)
	}

	// The three figures must come from one read-only snapshot.
	if txManager.readOnlyCalls != 1 {
		t.Errorf("read-only transactions = %d, want 1", txManager.readOnlyCalls)
	}

	if summary.TotalStock.String() != "5000" {
		t.Errorf("total stock = %s, want 5000", summary.TotalStock.String())
	}
	if summary.TotalSales.String() != "1200" {
		t.Errorf("total sales = %s, want 1200", summary.TotalSales.String())
	}
	if summary.MonthlySales.String() != "300" {
		t.Errorf("monthly sales = %s, want 300", summary.MonthlySales.String())
	}
}
