package dto

import (
	"stockbook/internal/domain/reports"
)

// ItemReportResponse wraps the item-wise report rows.
type ItemReportResponse struct {
	Items []reports.ItemReportRow `json:"items"`
}

// MonthlySalesResponse wraps the trailing month series.
type MonthlySalesResponse struct {
	Months []reports.MonthlySalesPoint `json:"months"`
}
