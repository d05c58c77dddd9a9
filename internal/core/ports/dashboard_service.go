package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// DashboardSummary is the read-only account projection: public user fields
// plus the derived referral count. Building it never mutates the store.
type DashboardSummary struct {
	User      *domain.User
	Referrals int64
}

type DashboardService interface {
	Summary(ctx context.Context, userID string) (*DashboardSummary, error)
}
