package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
)

type fakeUserRepo struct {
	users map[string]*User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *fakeUserRepo) ExistsEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, userID id.ID, token string, expires time.Time) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.ResetToken = &token
			u.ResetTokenExpires = &expires
			return nil
		}
	}
	return apperror.NewNotFound("user", userID)
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID id.ID, passwordHash string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			u.ResetToken = nil
			u.ResetTokenExpires = nil
			return nil
		}
	}
	return apperror.NewNotFound("user", userID)
}

type fakeMailer struct {
	sent []string // recipient addresses
	body string
}

func (m *fakeMailer) Send(_ context.Context, to, _ string, htmlBody string) error {
	m.sent = append(m.sent, to)
	m.body = htmlBody
	return nil
}

func testServiceConfig() ServiceConfig {
	cfg := DefaultServiceConfig("http://localhost:8080")
	cfg.BcryptCost = bcrypt.MinCost // keep tests fast
	return cfg
}

func newTestAuthService(repo Repository, mailer Mailer) *Service {
	return NewService(repo, NewJWTService(DefaultJWTConfig("test-secret")), mailer, testServiceConfig())
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Name:     "Shop Owner",
		Email:    "Owner@Example.Com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "owner@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "correct horse" {
		t.Fatal("password stored in plain text")
	}

	result, err := svc.Login(ctx, LoginRequest{Email: "owner@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" {
		t.Error("no token issued")
	}
	if result.User.ID != user.ID {
		t.Error("login resolved wrong user")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "a@b.c", Password: "longenough"}},
		{"bad email", RegisterRequest{Name: "X", Email: "not-an-email", Password: "longenough"}},
		{"short password", RegisterRequest{Name: "X", Email: "a@b.c", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			if !apperror.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	req := RegisterRequest{Name: "X", Email: "a@b.c", Password: "longenough"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, req)
	if err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "X", Email: "a@b.c", Password: "longenough"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Unknown email and wrong password fail identically.
	_, errUnknown := svc.Login(ctx, LoginRequest{Email: "ghost@b.c", Password: "longenough"})
	_, errWrongPw := svc.Login(ctx, LoginRequest{Email: "a@b.c", Password: "wrongwrong"})

	for _, err := range []error{errUnknown, errWrongPw} {
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeUnauthorized {
			t.Errorf("expected unauthorized error, got %v", err)
		}
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("credential errors differ, leaking account existence")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestAuthService(repo, mailer)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "X", Email: "a@b.c", Password: "oldpassword"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.ForgotPassword(ctx, "a@b.c"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "a@b.c" {
		t.Fatalf("reset mail not delivered: %v", mailer.sent)
	}

	user := repo.users["a@b.c"]
	if user.ResetToken == nil {
		t.Fatal("reset token not stored")
	}
	if !strings.Contains(mailer.body, *user.ResetToken) {
		t.Error("mail body missing reset token")
	}

	token := *user.ResetToken
	if err := svc.ResetPassword(ctx, "a@b.c", token, "newpassword"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if user.ResetToken != nil {
		t.Error("reset token not cleared after use")
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "a@b.c", Password: "newpassword"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "a@b.c", Password: "oldpassword"}); err == nil {
		t.Error("old password still accepted")
	}
}

func TestForgotPassword_UnknownEmailSilent(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestAuthService(newFakeUserRepo(), mailer)

	// Unknown accounts return success without sending mail.
	if err := svc.ForgotPassword(context.Background(), "ghost@b.c"); err != nil {
		t.Fatalf("ForgotPassword leaked account existence: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("mail sent for unknown account")
	}
}

func TestResetPassword_Rejections(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeMailer{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "X", Email: "a@b.c", Password: "oldpassword"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := svc.ForgotPassword(ctx, "a@b.c"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}

	user := repo.users["a@b.c"]
	token := *user.ResetToken

	if err := svc.ResetPassword(ctx, "a@b.c", "wrong-token", "newpassword"); !apperror.IsValidation(err) {
		t.Errorf("wrong token: expected validation error, got %v", err)
	}
	if err := svc.ResetPassword(ctx, "a@b.c", token, "short"); !apperror.IsValidation(err) {
		t.Errorf("short password: expected validation error, got %v", err)
	}

	expired := time.Now().Add(-time.Minute)
	user.ResetTokenExpires = &expired
	if err := svc.ResetPassword(ctx, "a@b.c", token, "newpassword"); !apperror.IsValidation(err) {
		t.Errorf("expired token: expected validation error, got %v", err)
	}
}
