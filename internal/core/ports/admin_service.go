package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// AdminOverview is the back-office listing of all accounts and withdrawal
// requests.
type AdminOverview struct {
	Users       []*domain.User
	Withdrawals []*domain.Withdrawal
}

type AdminService interface {
	Overview(ctx context.Context) (*AdminOverview, error)
}
