// Package items provides the Item Store: current inventory per owner and item name.
// Items are the only mutable entity in the system; they change exclusively
// through stock adds and sale decrements.
package items

import (
	"context"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// Item represents current inventory for one (owner, name) pair.
// At most one Item exists per owner and normalized name.
type Item struct {
	ID          id.ID       `db:"id" json:"id"`
	OwnerID     id.ID       `db:"owner_id" json:"-"`
	Name        string      `db:"name" json:"name"`
	Quantity    types.Money `db:"quantity" json:"quantity"`
	BuyingRate  types.Money `db:"buying_rate" json:"buying_rate"`
	SellingRate types.Money `db:"selling_rate" json:"selling_rate"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// NormalizeName produces the lookup key for an item name:
// surrounding whitespace stripped, case folded.
// "Rice" and " rice " address the same Item.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// StockAdd is the typed input for a stock addition.
type StockAdd struct {
	Name        string
	Quantity    types.Money
	BuyingRate  types.Money
	SellingRate types.Money
}

// Validate implements the input contract: name must be non-empty after
// trimming, quantity must be positive, rates non-negative.
func (a *StockAdd) Validate(ctx context.Context) error {
	if strings.TrimSpace(a.Name) == "" {
		return apperror.NewValidation("item name is required").WithDetail("field", "name")
	}
	if !a.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", a.Quantity.String())
	}
	if a.BuyingRate.IsNegative() {
		return apperror.NewValidation("buying_rate must not be negative").WithDetail("field", "buying_rate")
	}
	if a.SellingRate.IsNegative() {
		return apperror.NewValidation("selling_rate must not be negative").WithDetail("field", "selling_rate")
	}
	return nil
}
