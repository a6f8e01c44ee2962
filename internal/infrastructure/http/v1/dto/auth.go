// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/auth"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToAuthRequest converts to the domain input.
func (r RegisterRequest) ToAuthRequest() auth.RegisterRequest {
	return auth.RegisterRequest{Name: r.Name, Email: r.Email, Password: r.Password}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to the domain input.
func (r LoginRequest) ToCredentials() auth.LoginRequest {
	return auth.LoginRequest{Email: r.Email, Password: r.Password}
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest completes a password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserResponse is the public account shape.
type UserResponse struct {
	ID        id.ID     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// FromUser maps a domain user to its response shape.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse carries the issued token and its subject.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
