// Package appctx provides request-scoped values extraction.
package appctx

import (
	"context"

	"github.com/google/uuid"
)

// OwnerContext contains the authenticated owner identity.
// Every store read and write is scoped to exactly one owner.
type OwnerContext struct {
	OwnerID uuid.UUID
	Email   string
	Name    string
}

type ownerContextKey struct{}

// WithOwner adds OwnerContext to context.
func WithOwner(ctx context.Context, owner *OwnerContext) context.Context {
	return context.WithValue(ctx, ownerContextKey{}, owner)
}

// GetOwner returns OwnerContext from context, or nil.
func GetOwner(ctx context.Context) *OwnerContext {
	if v, ok := ctx.Value(ownerContextKey{}).(*OwnerContext); ok {
		return v
	}
	return nil
}

// GetOwnerID returns the owner id from context, or uuid.Nil.
func GetOwnerID(ctx context.Context) uuid.UUID {
	if o := GetOwner(ctx); o != nil {
		return o.OwnerID
	}
	return uuid.Nil
}
