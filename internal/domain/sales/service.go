package sales

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain/audit"
	"stockbook/pkg/logger"
)

// Service provides business logic for the Sale Ledger.
type Service struct {
	repo      Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new sales service.
func NewService(repo Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		auditor:   auditor,
	}
}

// RecordSale records one sale as a single atomic unit: lock the item,
// verify sufficient stock, debit the quantity, append the sale row.
// A sale that would drive quantity negative is rejected; negative stock
// is never allowed.
func (s *Service) RecordSale(ctx context.Context, ownerID id.ID, in RecordInput) (*Sale, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var sale *Sale
	var itemName string
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetItemForUpdate(ctx, ownerID, in.ItemName)
		if err != nil {
			return err
		}
		itemName = item.Name

		if item.Quantity.LessThan(in.Quantity) {
			return apperror.NewInsufficientStock(
				item.Name,
				in.Quantity.String(),
				item.Quantity.String(),
			)
		}

		if err := s.repo.DebitItemQuantity(ctx, item.ID, in.Quantity); err != nil {
			return fmt.Errorf("debit item quantity: %w", err)
		}

		sale = &Sale{
			ID:           id.New(),
			OwnerID:      ownerID,
			ItemID:       item.ID,
			Quantity:     in.Quantity,
			SellingPrice: in.SellingPrice,
			TotalPrice:   in.Quantity.Mul(in.SellingPrice),
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.repo.Append(ctx, sale); err != nil {
			return fmt.Errorf("append sale: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort, and deliberately outside the transaction: a failed
	// audit insert would otherwise abort it and lose the committed sale.
	if err := s.auditor.Record(ctx, audit.Change{
		EntityType: "item",
		EntityID:   sale.ItemID,
		OwnerID:    ownerID,
		Action:     audit.ActionSaleDebit,
		Payload: map[string]string{
			"sale_id":       sale.ID.String(),
			"item":          itemName,
			"quantity":      in.Quantity.String(),
			"selling_price": in.SellingPrice.String(),
			"total_price":   sale.TotalPrice.String(),
		},
	}); err != nil {
		logger.Warn(ctx, "audit record failed", "action", audit.ActionSaleDebit, "error", err)
	}

	logger.Info(ctx, "sale recorded",
		"sale_id", sale.ID,
		"item_id", sale.ItemID,
		"quantity", sale.Quantity.String(),
		"total", sale.TotalPrice.String(),
	)

	return sale, nil
}
