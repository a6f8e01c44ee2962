package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/items"
)

const itemTable = "items"

// Compile-time check that ItemRepo implements items.Repository.
var _ items.Repository = (*ItemRepo)(nil)

// ItemRepo implements items.Repository.
type ItemRepo struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txManager *TxManager) *ItemRepo {
	return &ItemRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// AddStock performs the add-or-increment upsert as a single statement.
// The unique index on (owner_id, lower(name)) makes concurrent adds for
// the same name serialize on the row instead of duplicating it.
func (r *ItemRepo) AddStock(ctx context.Context, ownerID id.ID, add items.StockAdd) (*items.Item, error) {
	const sql = `
		INSERT INTO items (id, owner_id, name, quantity, buying_rate, selling_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (owner_id, lower(name)) DO UPDATE SET
			quantity     = items.quantity + EXCLUDED.quantity,
			buying_rate  = EXCLUDED.buying_rate,
			selling_rate = EXCLUDED.selling_rate,
			updated_at   = EXCLUDED.updated_at
		RETURNING id, owner_id, name, quantity, buying_rate, selling_rate, created_at, updated_at
	`

	var item items.Item
	querier := r.txManager.GetQuerier(ctx)
	err := pgxscan.Get(ctx, querier, &item, sql,
		id.New(), ownerID, strings.TrimSpace(add.Name),
		add.Quantity, add.BuyingRate, add.SellingRate,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("add stock: %w", err))
	}

	return &item, nil
}

// GetByName retrieves an item by normalized name.
func (r *ItemRepo) GetByName(ctx context.Context, ownerID id.ID, name string) (*items.Item, error) {
	q := r.builder.
		Select("id", "owner_id", "name", "quantity", "buying_rate", "selling_rate", "created_at", "updated_at").
		From(itemTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where("lower(name) = ?", items.NormalizeName(name)).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var item items.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", name)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get item by name: %w", err))
	}

	return &item, nil
}

// ListNames returns all item names for the owner, ascending.
func (r *ItemRepo) ListNames(ctx context.Context, ownerID id.ID) ([]string, error) {
	q := r.builder.
		Select("name").
		From(itemTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var names []string
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &names, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list item names: %w", err))
	}

	return names, nil
}
