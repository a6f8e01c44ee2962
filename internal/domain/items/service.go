package items

import (
	"context"
	"fmt"
	"strings"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/audit"
	"stockbook/pkg/logger"
)

// Service provides business logic for the Item Store.
type Service struct {
	repo    Repository
	cache   NameCache // nil disables caching
	auditor audit.Recorder
}

// NewService creates a new item service.
func NewService(repo Repository, cache NameCache, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		auditor: auditor,
	}
}

// AddStock adds quantity for an item, creating it on first add.
// Restock is additive on quantity and last-write-wins on both rates.
func (s *Service) AddStock(ctx context.Context, ownerID id.ID, add StockAdd) (*Item, error) {
	if err := add.Validate(ctx); err != nil {
		return nil, err
	}
	add.Name = strings.TrimSpace(add.Name)

	item, err := s.repo.AddStock(ctx, ownerID, add)
	if err != nil {
		return nil, fmt.Errorf("add stock: %w", err)
	}

	if err := s.auditor.Record(ctx, audit.Change{
		EntityType: "item",
		EntityID:   item.ID,
		OwnerID:    ownerID,
		Action:     audit.ActionStockAdd,
		Payload: map[string]string{
			"name":         item.Name,
			"added_qty":    add.Quantity.String(),
			"quantity":     item.Quantity.String(),
			"buying_rate":  item.BuyingRate.String(),
			"selling_rate": item.SellingRate.String(),
		},
	}); err != nil {
		logger.Warn(ctx, "audit record failed", "action", audit.ActionStockAdd, "error", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, ownerID); err != nil {
			logger.Warn(ctx, "name cache invalidation failed", "error", err)
		}
	}

	logger.Info(ctx, "stock added",
		"item", item.Name,
		"added_qty", add.Quantity.String(),
		"quantity", item.Quantity.String(),
	)

	return item, nil
}

// ListNames returns all item names for the owner, ascending, for autocomplete.
func (s *Service) ListNames(ctx context.Context, ownerID id.ID) ([]string, error) {
	if s.cache != nil {
		if names, ok, err := s.cache.GetNames(ctx, ownerID); err == nil && ok {
			return names, nil
		} else if err != nil {
			logger.Warn(ctx, "name cache read failed", "error", err)
		}
	}

	names, err := s.repo.ListNames(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetNames(ctx, ownerID, names); err != nil {
			logger.Warn(ctx, "name cache write failed", "error", err)
		}
	}

	return names, nil
}

// GetInfo looks up one item by name, case and whitespace insensitive.
func (s *Service) GetInfo(ctx context.Context, ownerID id.ID, name string) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.NewValidation("item name is required").WithDetail("field", "name")
	}
	return s.repo.GetByName(ctx, ownerID, name)
}
