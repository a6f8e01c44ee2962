package sales

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/items"
)

// Repository defines persistence for the Sale Ledger.
// The locking methods must be called inside a transaction; the service
// owns the transaction boundary.
type Repository interface {
	// GetItemForUpdate retrieves an item by normalized name with a row
	// lock, so the stock check and decrement cannot race a concurrent sale.
	GetItemForUpdate(ctx context.Context, ownerID id.ID, name string) (*items.Item, error)

	// DebitItemQuantity subtracts qty from the locked item's quantity.
	DebitItemQuantity(ctx context.Context, itemID id.ID, qty types.Money) error

	// Append inserts one immutable sale row.
	Append(ctx context.Context, sale *Sale) error
}
