package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/debts"
)

const debtTable = "debts"

// Compile-time check that DebtRepo implements debts.Repository.
var _ debts.Repository = (*DebtRepo)(nil)

// DebtRepo implements debts.Repository.
type DebtRepo struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
}

// NewDebtRepo creates a new debt repository.
func NewDebtRepo(txManager *TxManager) *DebtRepo {
	return &DebtRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Append inserts one immutable debt entry.
func (r *DebtRepo) Append(ctx context.Context, entry *debts.Entry) error {
	q := r.builder.
		Insert(debtTable).
		Columns("id", "owner_id", "customer_name", "customer_number", "total", "credit", "created_at").
		Values(entry.ID, entry.OwnerID, entry.CustomerName, entry.CustomerNumber, entry.Total, entry.Credit, entry.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("append debt entry: %w", err))
	}

	return nil
}

// ListByCustomer returns the customer's entries oldest first. The running
// balance is computed by the service over this order.
func (r *DebtRepo) ListByCustomer(ctx context.Context, ownerID id.ID, customerNumber string) ([]debts.Entry, error) {
	q := r.builder.
		Select("id", "owner_id", "customer_name", "customer_number", "total", "credit", "created_at").
		From(debtTable).
		Where(squirrel.Eq{"owner_id": ownerID, "customer_number": customerNumber}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []debts.Entry
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list debt entries: %w", err))
	}

	return entries, nil
}

// DuesSummary aggregates entries per customer, ascending by name.
func (r *DebtRepo) DuesSummary(ctx context.Context, ownerID id.ID) ([]debts.CustomerDues, error) {
	q := r.builder.
		Select(
			"customer_name",
			"customer_number",
			"COALESCE(SUM(total), 0) AS total",
			"COALESCE(SUM(credit), 0) AS credit",
			"COALESCE(SUM(total), 0) - COALESCE(SUM(credit), 0) AS balance",
		).
		From(debtTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		GroupBy("customer_name", "customer_number").
		OrderBy("customer_name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dues []debts.CustomerDues
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &dues, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("dues summary: %w", err))
	}

	return dues, nil
}
