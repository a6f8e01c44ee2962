// Package auth provides registration, login and password-reset logic.
// The rest of the system trusts the owner identity this package resolves
// and scopes every read and write to it.
package auth

import (
	"time"

	"stockbook/internal/core/id"
)

// User is an account owner. Every item, sale and debt entry belongs to
// exactly one User.
type User struct {
	ID                id.ID      `db:"id" json:"id"`
	Name              string     `db:"name" json:"name"`
	Email             string     `db:"email" json:"email"`
	PasswordHash      string     `db:"password_hash" json:"-"`
	ResetToken        *string    `db:"reset_token" json:"-"`
	ResetTokenExpires *time.Time `db:"reset_token_expires" json:"-"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}

// NewUser creates a User with a fresh id.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		ID:           id.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// RegisterRequest is the typed registration input.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// LoginRequest is the typed login input.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult carries the issued token and the identity it encodes.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
