package service

import (
	"context"
	"fmt"

	"github.com/akachour/wird/internal/core/domain"
	"github.com/akachour/wird/internal/core/repository"
)

// AppendInput carries one day's submission. All counters must be
// non-negative.
type AppendInput struct {
	SalahCompleted       bool
	AlAsaasCount         int64
	MarbootaShareefCount int64
	FatihaCount          int64
	ZikrMufrithCount     int64
	Notes                string
}

// LedgerService owns the append-only activity ledger. It performs no
// authorization checks: gating is the session layer's responsibility.
type LedgerService struct {
	entryRepo repository.EntryRepository
}

func NewLedgerService(entryRepo repository.EntryRepository) *LedgerService {
	return &LedgerService{entryRepo: entryRepo}
}

// Append records a new entry for username, stamped with the current time.
func (s *LedgerService) Append(ctx context.Context, username string, in AppendInput) (*domain.Entry, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	for _, count := range []int64{in.AlAsaasCount, in.MarbootaShareefCount, in.FatihaCount, in.ZikrMufrithCount} {
		if count < 0 {
			return nil, fmt.Errorf("%w: counts must be non-negative", ErrInvalidInput)
		}
	}

	entry := domain.NewEntry(username, in.SalahCompleted,
		in.AlAsaasCount, in.MarbootaShareefCount, in.FatihaCount, in.ZikrMufrithCount,
		in.Notes)
	if err := s.entryRepo.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append entry: %w", err)
	}

	return entry, nil
}

// ListForUser returns a user's full history, newest first.
func (s *LedgerService) ListForUser(ctx context.Context, username string) ([]*domain.Entry, error) {
	return s.entryRepo.ListByUsername(ctx, username)
}

// ListAll returns entries across all users, newest first unless the filter
// orders otherwise.
func (s *LedgerService) ListAll(ctx context.Context, filter repository.EntryFilter) ([]*domain.Entry, error) {
	return s.entryRepo.ListAll(ctx, filter)
}

// CountAll counts entries matching the filter, ignoring pagination.
func (s *LedgerService) CountAll(ctx context.Context, filter repository.EntryFilter) (int, error) {
	return s.entryRepo.CountAll(ctx, filter)
}
