package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/auth"
)

const userTable = "users"

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Compile-time check that UserRepo implements auth.Repository.
var _ auth.Repository = (*UserRepo)(nil)

// UserRepo implements auth.Repository.
type UserRepo struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *TxManager) *UserRepo {
	return &UserRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user. A racing registration for the same email
// surfaces as a duplicate error through the unique index.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	q := r.builder.
		Insert(userTable).
		Columns("id", "name", "email", "password_hash", "created_at").
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewDuplicate("account", "email", user.Email)
		}
		return apperror.NewDatabase(fmt.Errorf("create user: %w", err))
	}

	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": userID}, userID)
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, email)
}

func (r *UserRepo) getOne(ctx context.Context, where squirrel.Eq, key any) (*auth.User, error) {
	q := r.builder.
		Select("id", "name", "email", "password_hash", "reset_token", "reset_token_expires", "created_at").
		From(userTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var user auth.User
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get user: %w", err))
	}

	return &user, nil
}

// ExistsEmail reports whether any account uses the email.
func (r *UserRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	const sql = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, email).Scan(&exists); err != nil {
		return false, apperror.NewDatabase(fmt.Errorf("check email exists: %w", err))
	}

	return exists, nil
}

// SetResetToken stores the reset token and its expiry on the user row.
func (r *UserRepo) SetResetToken(ctx context.Context, userID id.ID, token string, expires time.Time) error {
	q := r.builder.
		Update(userTable).
		Set("reset_token", token).
		Set("reset_token_expires", expires).
		Where(squirrel.Eq{"id": userID})

	return r.execUpdate(ctx, q, userID, "set reset token")
}

// UpdatePassword replaces the hash and clears any reset token.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID id.ID, passwordHash string) error {
	q := r.builder.
		Update(userTable).
		Set("password_hash", passwordHash).
		Set("reset_token", nil).
		Set("reset_token_expires", nil).
		Where(squirrel.Eq{"id": userID})

	return r.execUpdate(ctx, q, userID, "update password")
}

func (r *UserRepo) execUpdate(ctx context.Context, q squirrel.UpdateBuilder, userID id.ID, op string) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("%s: %w", op, err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID)
	}

	return nil
}
