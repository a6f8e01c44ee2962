package auth

import (
	"context"
	"time"

	"stockbook/internal/core/id"
)

// Repository defines user persistence.
type Repository interface {
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail returns NotFound when no account uses the email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	ExistsEmail(ctx context.Context, email string) (bool, error)

	// SetResetToken stores the reset token and its expiry on the user row.
	SetResetToken(ctx context.Context, userID id.ID, token string, expires time.Time) error

	// UpdatePassword replaces the hash and clears any reset token.
	UpdatePassword(ctx context.Context, userID id.ID, passwordHash string) error
}

// Mailer delivers transactional mail through the external relay.
// Failures are surfaced, never retried here.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
