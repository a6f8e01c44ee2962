package debts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/pkg/logger"
)

// Service provides business logic for the Debt Ledger.
type Service struct {
	repo Repository
}

// NewService creates a new debts service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddEntry validates and appends one debt entry. Entries are never
// edited or deleted afterwards.
func (s *Service) AddEntry(ctx context.Context, ownerID id.ID, in AddInput) (*Entry, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:             id.New(),
		OwnerID:        ownerID,
		CustomerName:   strings.TrimSpace(in.CustomerName),
		CustomerNumber: in.CustomerNumber,
		Total:          in.Total,
		Credit:         in.Credit,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append debt entry: %w", err)
	}

	logger.Info(ctx, "debt entry added",
		"customer", entry.CustomerName,
		"number", entry.CustomerNumber,
		"total", entry.Total.String(),
		"credit", entry.Credit.String(),
	)

	return entry, nil
}

// CustomerLedger returns the full ledger for one customer number with a
// running balance per line. The balance is order-dependent: entries are
// accumulated ascending by creation time.
func (s *Service) CustomerLedger(ctx context.Context, ownerID id.ID, customerNumber string) ([]LedgerLine, error) {
	if err := ValidateCustomerNumber(customerNumber); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListByCustomer(ctx, ownerID, customerNumber)
	if err != nil {
		return nil, fmt.Errorf("list debt entries: %w", err)
	}

	return AnnotateRunningBalance(entries), nil
}

// DuesSummary returns per-customer aggregates across all entries.
func (s *Service) DuesSummary(ctx context.Context, ownerID id.ID) ([]CustomerDues, error) {
	dues, err := s.repo.DuesSummary(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("dues summary: %w", err)
	}
	return dues, nil
}

// AnnotateRunningBalance computes the cumulative total-minus-credit
// balance over entries in the order given.
func AnnotateRunningBalance(entries []Entry) []LedgerLine {
	lines := make([]LedgerLine, 0, len(entries))
	balance := types.Zero()
	for _, e := range entries {
		balance = balance.Add(e.Total).Sub(e.Credit)
		lines = append(lines, LedgerLine{Entry: e, Balance: balance})
	}
	return lines
}
