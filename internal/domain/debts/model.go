// Package debts provides the Debt Ledger: append-only customer credit
// transactions. A customer's balance is the running sum of total minus
// credit across their entries in creation order.
package debts

import (
	"context"
	"regexp"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// customerNumberRe enforces exactly 10 digits, matching the phone-number
// format the ledger keys customers by.
var customerNumberRe = regexp.MustCompile(`^\d{10}$`)

// Entry is one immutable debt ledger row.
type Entry struct {
	ID             id.ID       `db:"id" json:"id"`
	OwnerID        id.ID       `db:"owner_id" json:"-"`
	CustomerName   string      `db:"customer_name" json:"customer_name"`
	CustomerNumber string      `db:"customer_number" json:"customer_number"`
	Total          types.Money `db:"total" json:"total"`
	Credit         types.Money `db:"credit" json:"credit"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
}

// LedgerLine is an Entry annotated with the running balance
// cumulative(total) - cumulative(credit) up to and including this entry.
type LedgerLine struct {
	Entry
	Balance types.Money `json:"balance"`
}

// CustomerDues is the per-customer aggregate over all entries.
type CustomerDues struct {
	CustomerName   string      `db:"customer_name" json:"customer_name"`
	CustomerNumber string      `db:"customer_number" json:"customer_number"`
	Total          types.Money `db:"total" json:"total"`
	Credit         types.Money `db:"credit" json:"credit"`
	Balance        types.Money `db:"balance" json:"balance"`
}

// AddInput is the typed input for appending a debt entry.
// Total and Credit default to zero when absent.
type AddInput struct {
	CustomerName   string
	CustomerNumber string
	Total          types.Money
	Credit         types.Money
}

// Validate checks the entry input before any store access.
func (in *AddInput) Validate(ctx context.Context) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return apperror.NewValidation("customer name is required").WithDetail("field", "customer_name")
	}
	if err := ValidateCustomerNumber(in.CustomerNumber); err != nil {
		return err
	}
	if in.Total.IsNegative() {
		return apperror.NewValidation("total must not be negative").WithDetail("field", "total")
	}
	if in.Credit.IsNegative() {
		return apperror.NewValidation("credit must not be negative").WithDetail("field", "credit")
	}
	return nil
}

// ValidateCustomerNumber rejects anything but exactly 10 digits.
func ValidateCustomerNumber(number string) error {
	if !customerNumberRe.MatchString(number) {
		return apperror.NewValidation("customer number must be exactly 10 digits").
			WithDetail("field", "customer_number").
			WithDetail("value", number)
	}
	return nil
}
