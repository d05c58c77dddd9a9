package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

type WithdrawalService interface {
	// Request debits the user's balance and records a pending withdrawal.
	// An empty method defaults to domain.DefaultWithdrawalMethod.
	Request(ctx context.Context, userID string, amount int64, method string) (*domain.Withdrawal, error)
}
