package items

import (
	"context"
	"testing"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

type fakeItemRepo struct {
	items     map[string]*Item // keyed by normalized name
	listCalls int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*Item)}
}

func (r *fakeItemRepo) AddStock(_ context.Context, ownerID id.ID, add StockAdd) (*Item, error) {
	key := NormalizeName(add.Name)
	if existing, ok := r.items[key]; ok {
		existing.Quantity = existing.Quantity.Add(add.Quantity)
		existing.BuyingRate = add.BuyingRate
		existing.SellingRate = add.SellingRate
		return existing, nil
	}
	item := &Item{
		ID:          id.New(),
		OwnerID:     ownerID,
		Name:        add.Name,
		Quantity:    add.Quantity,
		BuyingRate:  add.BuyingRate,
		SellingRate: add.SellingRate,
	}
	r.items[key] = item
	return item, nil
}

func (r *fakeItemRepo) GetByName(_ context.Context, _ id.ID, name string) (*Item, error) {
	if item, ok := r.items[NormalizeName(name)]; ok {
		return item, nil
	}
	return nil, apperror.NewNotFound("item", name)
}

func (r *fakeItemRepo) ListNames(context.Context, id.ID) ([]string, error) {
	r.listCalls++
	names := make([]string, 0, len(r.items))
	for _, item := range r.items {
		names = append(names, item.Name)
	}
	return names, nil
}

type fakeNameCache struct {
	names       []string
	hit         bool
	invalidated int
}

func (c *fakeNameCache) GetNames(context.Context, id.ID) ([]string, bool, error) {
	return c.names, c.hit, nil
}

func (c *fakeNameCache) SetNames(_ context.Context, _ id.ID, names []string) error {
	c.names = names
	c.hit = true
	return nil
}

func (c *fakeNameCache) Invalidate(context.Context, id.ID) error {
	c.invalidated++
	c.hit = false
	return nil
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Rice", "rice"},
		{"  rice  ", "rice"},
		{"RICE", "rice"},
		{"Tea Powder", "tea powder"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddStock_RestockSemantics(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewService(repo, nil, nil)
	ownerID := id.New()
	ctx := context.Background()

	first, err := svc.AddStock(ctx, ownerID, StockAdd{
		Name:        "Rice",
		Quantity:    types.MustMoney("10"),
		BuyingRate:  types.MustMoney("38"),
		SellingRate: types.MustMoney("45"),
	})
	if err != nil {
		t.Fatalf("first AddStock failed: %v", err)
	}

	// Same item through a differently-cased, padded name: quantity adds,
	// rates are replaced.
	second, err := svc.AddStock(ctx, ownerID, StockAdd{
		Name:        "  rice ",
		Quantity:    types.MustMoney("5"),
		BuyingRate:  types.MustMoney("40"),
		SellingRate: types.MustMoney("48"),
	})
	if err != nil {
		t.Fatalf("second AddStock failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("restock created a new item")
	}
	if second.Quantity.String() != "15" {
		t.Errorf("quantity = %s, want 15", second.Quantity.String())
	}
	if second.SellingRate.String() != "48" {
		t.Errorf("selling rate = %s, want 48", second.SellingRate.String())
	}
}

func TestAddStock_Validation(t *testing.T) {
	svc := NewService(newFakeItemRepo(), nil, nil)

	tests := []struct {
		name string
		add  StockAdd
	}{
		{"empty name", StockAdd{Quantity: types.MustMoney("1")}},
		{"whitespace name", StockAdd{Name: "   ", Quantity: types.MustMoney("1")}},
		{"zero quantity", StockAdd{Name: "Rice"}},
		{"negative quantity", StockAdd{Name: "Rice", Quantity: types.MustMoney("-2")}},
		{"negative buying rate", StockAdd{Name: "Rice", Quantity: types.MustMoney("1"), BuyingRate: types.MustMoney("-1")}},
		{"negative selling rate", StockAdd{Name: "Rice", Quantity: types.MustMoney("1"), SellingRate: types.MustMoney("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddStock(context.Background(), id.New(), tt.add)
			if !apperror.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAddStock_InvalidatesNameCache(t *testing.T) {
	repo := newFakeItemRepo()
	cache := &fakeNameCache{}
	svc := NewService(repo, cache, nil)
	ownerID := id.New()
	ctx := context.Background()

	if _, err := svc.ListNames(ctx, ownerID); err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected repo hit, got %d calls", repo.listCalls)
	}

	// Warm cache serves the second read.
	if _, err := svc.ListNames(ctx, ownerID); err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if repo.listCalls != 1 {
		t.Errorf("cached read went to repo, %d calls", repo.listCalls)
	}

	_, err := svc.AddStock(ctx, ownerID, StockAdd{
		Name:     "Sugar",
		Quantity: types.MustMoney("3"),
	})
	if err != nil {
		t.Fatalf("AddStock failed: %v", err)
	}
	if cache.invalidated != 1 {
		t.Errorf("cache invalidated %d times, want 1", cache.invalidated)
	}

	if _, err := svc.ListNames(ctx, ownerID); err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if repo.listCalls != 2 {
		t.Errorf("post-invalidation read served stale cache")
	}
}

func TestGetInfo_RequiresName(t *testing.T) {
	svc := NewService(newFakeItemRepo(), nil, nil)

	_, err := svc.GetInfo(context.Background(), id.New(), "  ")
	if !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
