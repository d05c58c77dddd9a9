package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// WithdrawalRepository appends withdrawal requests. Records are never mutated
// here; status transitions past "pending" belong to an external back office.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *domain.Withdrawal) error
	List(ctx context.Context) ([]*domain.Withdrawal, error)
}
