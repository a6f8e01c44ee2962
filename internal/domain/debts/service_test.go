package debts

import (
	"context"
	"testing"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

type fakeDebtRepo struct {
	entries  []Entry
	appended []*Entry
}

func (r *fakeDebtRepo) Append(_ context.Context, entry *Entry) error {
	r.appended = append(r.appended, entry)
	return nil
}

func (r *fakeDebtRepo) ListByCustomer(context.Context, id.ID, string) ([]Entry, error) {
	return r.entries, nil
}

func (r *fakeDebtRepo) DuesSummary(context.Context, id.ID) ([]CustomerDues, error) {
	return nil, nil
}

func TestValidateCustomerNumber(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		wantErr bool
	}{
		{"valid", "9876543210", false},
		{"too short", "987654321", true},
		{"too long", "98765432101", true},
		{"letters", "98765xy210", true},
		{"empty", "", true},
		{"with plus prefix", "+876543210", true},
		{"with spaces", "987654 210", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustomerNumber(tt.number)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCustomerNumber(%q) error = %v, wantErr %v", tt.number, err, tt.wantErr)
			}
			if err != nil && !apperror.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAnnotateRunningBalance(t *testing.T) {
	entries := []Entry{
		{Total: types.MustMoney("100"), Credit: types.MustMoney("30")},
		{Total: types.MustMoney("50"), Credit: types.MustMoney("20")},
		{Total: types.Zero(), Credit: types.MustMoney("100")},
	}

	lines := AnnotateRunningBalance(entries)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	want := []string{"70", "100", "0"}
	for i, w := range want {
		if lines[i].Balance.String() != w {
			t.Errorf("line %d balance = %s, want %s", i, lines[i].Balance.String(), w)
		}
	}
}

func TestAnnotateRunningBalance_Empty(t *testing.T) {
	lines := AnnotateRunningBalance(nil)
	if len(lines) != 0 {
		t.Fatalf("expected empty slice, got %d lines", len(lines))
	}
}

func TestAddEntry(t *testing.T) {
	repo := &fakeDebtRepo{}
	svc := NewService(repo)
	ownerID := id.New()

	entry, err := svc.AddEntry(context.Background(), ownerID, AddInput{
		CustomerName:   "  Ramesh  ",
		CustomerNumber: "9876543210",
		Total:          types.MustMoney("250"),
		Credit:         types.Zero(),
	})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	if entry.CustomerName != "Ramesh" {
		t.Errorf("customer name not trimmed: %q", entry.CustomerName)
	}
	if entry.OwnerID != ownerID {
		t.Errorf("entry not owner-scoped")
	}
	if len(repo.appended) != 1 {
		t.Fatalf("expected 1 appended entry, got %d", len(repo.appended))
	}
}

func TestAddEntry_Invalid(t *testing.T) {
	svc := NewService(&fakeDebtRepo{})

	tests := []struct {
		name string
		in   AddInput
	}{
		{"missing name", AddInput{CustomerNumber: "9876543210"}},
		{"bad number", AddInput{CustomerName: "X", CustomerNumber: "123"}},
		{"negative total", AddInput{CustomerName: "X", CustomerNumber: "9876543210", Total: types.MustMoney("-1")}},
		{"negative credit", AddInput{CustomerName: "X", CustomerNumber: "9876543210", Credit: types.MustMoney("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddEntry(context.Background(), id.New(), tt.in)
			if !apperror.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCustomerLedger_RejectsBadNumber(t *testing.T) {
	svc := NewService(&fakeDebtRepo{})

	_, err := svc.CustomerLedger(context.Background(), id.New(), "12345")
	if !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
