package service

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
	"github.com/wahho/rewards-platform/internal/core/ports"
)

// recentEntriesLimit caps the ledger page returned to a user.
const recentEntriesLimit = 50

// LedgerService exposes a user's own balance history from the audit trail.
type LedgerService struct {
	entries ports.LedgerRepository
}

func NewLedgerService(entries ports.LedgerRepository) *LedgerService {
	return &LedgerService{entries: entries}
}

func (s *LedgerService) Recent(ctx context.Context, userID string) ([]*domain.LedgerEntry, error) {
	return s.entries.ListByUser(ctx, userID, recentEntriesLimit)
}
