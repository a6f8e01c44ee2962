package sales

import (
	"context"
	"errors"
	"testing"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/items"
)

// passthroughTxManager runs the callback without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSaleRepo struct {
	item     *items.Item
	debited  types.Money
	appended []*Sale
}

func (r *fakeSaleRepo) GetItemForUpdate(_ context.Context, _ id.ID, name string) (*items.Item, error) {
	if r.item == nil {
		return nil, apperror.NewNotFound("item", name)
	}
	return r.item, nil
}

func (r *fakeSaleRepo) DebitItemQuantity(_ context.Context, _ id.ID, qty types.Money) error {
	r.debited = r.debited.Add(qty)
	return nil
}

func (r *fakeSaleRepo) Append(_ context.Context, sale *Sale) error {
	r.appended = append(r.appended, sale)
	return nil
}

func stockedItem(qty string) *items.Item {
	return &items.Item{
		ID:       id.New(),
		Name:     "Rice",
		Quantity: types.MustMoney(qty),
	}
}

func TestRecordSale(t *testing.T) {
	repo := &fakeSaleRepo{item: stockedItem("10")}
	svc := NewService(repo, passthroughTxManager{}, nil)
	ownerID := id.New()

	sale, err := svc.RecordSale(context.Background(), ownerID, RecordInput{
		ItemName:     "rice",
		Quantity:     types.MustMoney("3"),
		SellingPrice: types.MustMoney("45.50"),
	})
	if err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}

	if sale.TotalPrice.String() != "136.5" {
		t.Errorf("total price = %s, want 136.5", sale.TotalPrice.String())
	}
	if sale.OwnerID != ownerID {
		t.Errorf("sale not owner-scoped")
	}
	if repo.debited.String() != "3" {
		t.Errorf("debited = %s, want 3", repo.debited.String())
	}
	if len(repo.appended) != 1 {
		t.Fatalf("expected 1 appended sale, got %d", len(repo.appended))
	}
}

func TestRecordSale_ExactStock(t *testing.T) {
	repo := &fakeSaleRepo{item: stockedItem("5")}
	svc := NewService(repo, passthroughTxManager{}, nil)

	// Selling exactly the available quantity drives stock to zero, which
	// is allowed; only negative stock is rejected.
	_, err := svc.RecordSale(context.Background(), id.New(), RecordInput{
		ItemName:     "Rice",
		Quantity:     types.MustMoney("5"),
		SellingPrice: types.MustMoney("10"),
	})
	if err != nil {
		t.Fatalf("RecordSale failed for exact stock: %v", err)
	}
}

func TestRecordSale_InsufficientStock(t *testing.T) {
	repo := &fakeSaleRepo{item: stockedItem("2")}
	svc := NewService(repo, passthroughTxManager{}, nil)

	_, err := svc.RecordSale(context.Background(), id.New(), RecordInput{
		ItemName:     "Rice",
		Quantity:     types.MustMoney("3"),
		SellingPrice: types.MustMoney("10"),
	})
	if !apperror.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	if len(repo.appended) != 0 {
		t.Errorf("sale appended despite insufficient stock")
	}
	if !repo.debited.IsZero() {
		t.Errorf("stock debited despite insufficient stock")
	}
}

func TestRecordSale_UnknownItem(t *testing.T) {
	svc := NewService(&fakeSaleRepo{}, passthroughTxManager{}, nil)

	_, err := svc.RecordSale(context.Background(), id.New(), RecordInput{
		ItemName:     "Ghost",
		Quantity:     types.MustMoney("1"),
		SellingPrice: types.MustMoney("10"),
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

// trackingTxManager marks when the transaction callback is executing.
type trackingTxManager struct {
	inTx bool
}

func (m *trackingTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.inTx = true
	err := fn(ctx)
	m.inTx = false
	return err
}

type failingAuditor struct {
	txManager  *trackingTxManager
	called     bool
	calledInTx bool
}

func (a *failingAuditor) Record(context.Context, audit.Change) error {
	a.called = true
	a.calledInTx = a.txManager.inTx
	return errors.New("audit store down")
}

func TestRecordSale_AuditFailureDoesNotLoseSale(t *testing.T) {
	repo := &fakeSaleRepo{item: stockedItem("10")}
	txManager := &trackingTxManager{}
	auditor := &failingAuditor{txManager: txManager}
	svc := NewService(repo, txManager, auditor)

	sale, err := svc.RecordSale(context.Background(), id.New(), RecordInput{
		ItemName:     "Rice",
		Quantity:     types.MustMoney("2"),
		SellingPrice: types.MustMoney("10"),
	})
	if err != nil {
		t.Fatalf("RecordSale failed on audit error: %v", err)
	}
	if sale == nil || len(repo.appended) != 1 {
		t.Fatalf("sale not recorded")
	}

	if !auditor.called {
		t.Fatalf("auditor never invoked")
	}
	// Recording inside the transaction would abort it on failure and
	// lose the sale at commit.
	if auditor.calledInTx {
		t.Errorf("audit recorded inside the sale transaction")
	}
}

func TestRecordInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      RecordInput
		wantErr bool
	}{
		{"valid", RecordInput{ItemName: "Rice", Quantity: types.MustMoney("1"), SellingPrice: types.MustMoney("10")}, false},
		{"fractional quantity", RecordInput{ItemName: "Rice", Quantity: types.MustMoney("0.5"), SellingPrice: types.MustMoney("10")}, false},
		{"free of charge", RecordInput{ItemName: "Rice", Quantity: types.MustMoney("1"), SellingPrice: types.Zero()}, false},
		{"empty name", RecordInput{Quantity: types.MustMoney("1"), SellingPrice: types.MustMoney("10")}, true},
		{"blank name", RecordInput{ItemName: "   ", Quantity: types.MustMoney("1"), SellingPrice: types.MustMoney("10")}, true},
		{"zero quantity", RecordInput{ItemName: "Rice", SellingPrice: types.MustMoney("10")}, true},
		{"negative quantity", RecordInput{ItemName: "Rice", Quantity: types.MustMoney("-1"), SellingPrice: types.MustMoney("10")}, true},
		{"negative price", RecordInput{ItemName: "Rice", Quantity: types.MustMoney("1"), SellingPrice: types.MustMoney("-5")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
