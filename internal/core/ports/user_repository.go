package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// UserRepository persists user aggregates. Every balance-mutating method is a
// single atomic per-document operation so two concurrent requests can never
// observe or produce a lost update.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)

	// CreditBalance adds amount to the user's balance and returns the
	// updated user. Used for referral bonuses and debit compensation.
	CreditBalance(ctx context.Context, userID string, amount int64) (*domain.User, error)

	// CompleteTask atomically adds taskID to the completion set and credits
	// the reward. Returns domain.ErrTaskAlreadyCompleted when the task is
	// already in the set.
	CompleteTask(ctx context.Context, userID, taskID string, reward int64) (*domain.User, error)

	// DebitBalance subtracts amount only when the current balance covers it,
	// returning domain.ErrInsufficientFunds otherwise.
	DebitBalance(ctx context.Context, userID string, amount int64) (*domain.User, error)

	// CountReferred returns how many users registered with the given
	// referral code.
	CountReferred(ctx context.Context, referralCode string) (int64, error)

	List(ctx context.Context) ([]*domain.User, error)
}
