package debts

import (
	"context"

	"stockbook/internal/core/id"
)

// Repository defines persistence for the Debt Ledger.
type Repository interface {
	// Append inserts one immutable debt entry.
	Append(ctx context.Context, entry *Entry) error

	// ListByCustomer returns all entries for one customer number,
	// owner-scoped, ascending by creation time.
	ListByCustomer(ctx context.Context, ownerID id.ID, customerNumber string) ([]Entry, error)

	// DuesSummary groups all entries by (customer_name, customer_number)
	// with summed total, credit and balance, ascending by name.
	DuesSummary(ctx context.Context, ownerID id.ID) ([]CustomerDues, error)
}
