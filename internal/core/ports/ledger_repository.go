package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// LedgerRepository stores the append-only balance audit trail.
type LedgerRepository interface {
	Insert(ctx context.Context, entry *domain.LedgerEntry) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]*domain.LedgerEntry, error)
}
