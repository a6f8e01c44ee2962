package items

import (
	"context"

	"stockbook/internal/core/id"
)

// Repository defines persistence for the Item Store.
type Repository interface {
	// AddStock performs the atomic add-or-increment upsert: if an item with
	// the same normalized name exists for the owner, its quantity is
	// incremented and both rates are replaced; otherwise a new row is
	// created. Executes as a single statement so concurrent adds for the
	// same name cannot lose updates. Returns the resulting row.
	AddStock(ctx context.Context, ownerID id.ID, add StockAdd) (*Item, error)

	// GetByName retrieves an item by normalized name.
	GetByName(ctx context.Context, ownerID id.ID, name string) (*Item, error)

	// ListNames returns all item names for the owner, ascending.
	ListNames(ctx context.Context, ownerID id.ID) ([]string, error)
}

// NameCache caches the autocomplete name list per owner.
// Implementations must tolerate being absent; a nil cache disables caching.
type NameCache interface {
	GetNames(ctx context.Context, ownerID id.ID) ([]string, bool, error)
	SetNames(ctx context.Context, ownerID id.ID, names []string) error
	Invalidate(ctx context.Context, ownerID id.ID) error
}
