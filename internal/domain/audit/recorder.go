// Package audit defines the write-only mutation trail contract.
// Only mutable state is audited; the append-only ledgers are their own history.
package audit

import (
	"context"

	"stockbook/internal/core/id"
)

// Action identifies the audited operation type.
type Action string

const (
	ActionStockAdd  Action = "stock_add"
	ActionSaleDebit Action = "sale_debit"
)

// Change describes one recorded mutation.
type Change struct {
	EntityType string
	EntityID   id.ID
	OwnerID    id.ID
	Action     Action

	// Payload is marshalled to JSON by the store; large payloads are
	// compressed before persisting.
	Payload any
}

// Recorder persists audit entries. Recording is best-effort: callers log
// failures but never fail the business operation over them.
type Recorder interface {
	Record(ctx context.Context, change Change) error
}

// Nop is a Recorder that discards all changes. Used in tests.
type Nop struct{}

func (Nop) Record(context.Context, Change) error { return nil }
