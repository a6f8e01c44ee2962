package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/items"
	"stockbook/internal/domain/sales"
)

const saleTable = "sales"

// Compile-time check that SaleRepo implements sales.Repository.
var _ sales.Repository = (*SaleRepo)(nil)

// SaleRepo implements sales.Repository.
type SaleRepo struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *TxManager) *SaleRepo {
	return &SaleRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetItemForUpdate locks the item row for the rest of the transaction.
// A concurrent sale for the same item blocks here until commit, so the
// stock check always sees the latest quantity.
func (r *SaleRepo) GetItemForUpdate(ctx context.Context, ownerID id.ID, name string) (*items.Item, error) {
	const sql = `
		SELECT id, owner_id, name, quantity, buying_rate, selling_rate, created_at, updated_at
		FROM items
		WHERE owner_id = $1 AND lower(name) = $2
		FOR UPDATE
	`

	var item items.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &item, sql, ownerID, items.NormalizeName(name)); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", name)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("lock item for sale: %w", err))
	}

	return &item, nil
}

// DebitItemQuantity subtracts qty from the locked item's stock.
func (r *SaleRepo) DebitItemQuantity(ctx context.Context, itemID id.ID, qty types.Money) error {
	q := r.builder.
		Update(itemTable).
		Set("quantity", squirrel.Expr("quantity - ?", qty)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("debit item quantity: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID)
	}

	return nil
}

// Append inserts one immutable sale row.
func (r *SaleRepo) Append(ctx context.Context, sale *sales.Sale) error {
	q := r.builder.
		Insert(saleTable).
		Columns("id", "owner_id", "item_id", "quantity", "selling_price", "total_price", "created_at").
		Values(sale.ID, sale.OwnerID, sale.ItemID, sale.Quantity, sale.SellingPrice, sale.TotalPrice, sale.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("append sale: %w", err))
	}

	return nil
}
