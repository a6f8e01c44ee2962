package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/appctx"
	"stockbook/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	BcryptCost        int
	PasswordMinLength int
	ResetTokenTTL     time.Duration
	BaseURL           string // public URL the reset link points at
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig(baseURL string) ServiceConfig {
	return ServiceConfig{
		BcryptCost:        12,
		PasswordMinLength: 8,
		ResetTokenTTL:     15 * time.Minute,
		BaseURL:           baseURL,
	}
}

// Service provides authentication logic.
type Service struct {
	repo       Repository
	jwtService *JWTService
	mailer     Mailer // nil disables reset mail delivery
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(repo Repository, jwtService *JWTService, mailer Mailer, config ServiceConfig) *Service {
	return &Service{
		repo:       repo,
		jwtService: jwtService,
		mailer:     mailer,
		config:     config,
	}
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" {
		return nil, apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, apperror.NewValidation("valid email is required").WithDetail("field", "email")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.repo.ExistsEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("account", "email", req.Email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.Name, req.Email, string(passwordHash))
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "account created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies credentials and issues an access token.
// Wrong email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	logger.Info(ctx, "login", "user_id", user.ID)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ForgotPassword stores a short-lived reset token and mails the reset
// link through the relay. The response does not reveal whether the
// account exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Do not leak account existence.
			logger.Info(ctx, "password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expires := time.Now().Add(s.config.ResetTokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if s.mailer == nil {
		logger.Warn(ctx, "mail relay not configured, reset link not delivered", "user_id", user.ID)
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset.html?token=%s&email=%s",
		strings.TrimSuffix(s.config.BaseURL, "/"), token, url.QueryEscape(email))
	body := fmt.Sprintf(
		`<p>You requested a password reset.</p><p><a href="%s">Reset Password</a></p><p>Valid for %d minutes.</p>`,
		resetLink, int(s.config.ResetTokenTTL.Minutes()))

	if err := s.mailer.Send(ctx, email, "Reset your password", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	logger.Info(ctx, "password reset mail sent", "user_id", user.ID)
	return nil
}

// ResetPassword validates the token and sets a new password.
func (s *Service) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || token == "" {
		return apperror.NewValidation("email and token are required")
	}
	if len(newPassword) < s.config.PasswordMinLength {
		return apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("invalid token or email")
		}
		return fmt.Errorf("get user: %w", err)
	}

	if user.ResetToken == nil || *user.ResetToken != token {
		return apperror.NewValidation("invalid token or email")
	}
	if user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(time.Now()) {
		return apperror.NewValidation("reset token expired")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.config.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	logger.Info(ctx, "password reset completed", "user_id", user.ID)
	return nil
}

// Me returns the account behind the authenticated owner context.
func (s *Service) Me(ctx context.Context) (*User, error) {
	owner := appctx.GetOwner(ctx)
	if owner == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	return s.repo.GetByID(ctx, owner.OwnerID)
}

func newResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
