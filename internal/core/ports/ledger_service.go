package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// LedgerRecorder accepts audit entries for asynchronous persistence. Record
// must not block request handling; entries are best-effort.
type LedgerRecorder interface {
	Record(entry domain.LedgerEntry)
}

type LedgerService interface {
	Recent(ctx context.Context, userID string) ([]*domain.LedgerEntry, error)
}
