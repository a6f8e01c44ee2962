package dto

import (
	"stockbook/internal/core/types"
	"stockbook/internal/domain/debts"
)

// AddDebtRequest is the debt entry payload. Total and credit default to
// zero when absent.
type AddDebtRequest struct {
	CustomerName   string      `json:"customer_name" binding:"required"`
	CustomerNumber string      `json:"customer_number" binding:"required"`
	Total          types.Money `json:"total"`
	Credit         types.Money `json:"credit"`
}

// ToAddInput converts to the domain input.
func (r AddDebtRequest) ToAddInput() debts.AddInput {
	return debts.AddInput{
		CustomerName:   r.CustomerName,
		CustomerNumber: r.CustomerNumber,
		Total:          r.Total,
		Credit:         r.Credit,
	}
}

// CustomerLedgerResponse is one customer's entries with running balances.
type CustomerLedgerResponse struct {
	CustomerNumber string             `json:"customer_number"`
	Entries        []debts.LedgerLine `json:"entries"`
}

// DuesSummaryResponse is the per-customer aggregate list.
type DuesSummaryResponse struct {
	Customers []debts.CustomerDues `json:"customers"`
}
