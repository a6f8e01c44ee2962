// Package sales provides the Sale Ledger: an append-only record of sale
// events. A sale debits item stock and appends one immutable row in a
// single transaction.
package sales

import (
	"context"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// Sale is one immutable sale event.
type Sale struct {
	ID           id.ID       `db:"id" json:"id"`
	OwnerID      id.ID       `db:"owner_id" json:"-"`
	ItemID       id.ID       `db:"item_id" json:"item_id"`
	Quantity     types.Money `db:"quantity" json:"quantity"`
	SellingPrice types.Money `db:"selling_price" json:"selling_price"`
	TotalPrice   types.Money `db:"total_price" json:"total_price"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// RecordInput is the typed input for recording a sale.
type RecordInput struct {
	ItemName     string
	Quantity     types.Money
	SellingPrice types.Money
}

// Validate checks the sale input before any store access.
func (in *RecordInput) Validate(ctx context.Context) error {
	if strings.TrimSpace(in.ItemName) == "" {
		return apperror.NewValidation("item name is required").WithDetail("field", "item_name")
	}
	if !in.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", in.Quantity.String())
	}
	if in.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling_price must not be negative").WithDetail("field", "selling_price")
	}
	return nil
}
