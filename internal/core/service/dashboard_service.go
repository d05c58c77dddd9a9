package service

import (
	"context"
	"fmt"

	"github.com/wahho/rewards-platform/internal/core/ports"
)

// DashboardService derives read-only account summaries. It performs no
// mutation.
type DashboardService struct {
	users ports.UserRepository
}

func NewDashboardService(users ports.UserRepository) *DashboardService {
	return &DashboardService{users: users}
}

// Summary returns the user's public fields plus the number of users who
// registered with this user's referral code.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*ports.DashboardSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	referrals, err := s.users.CountReferred(ctx, user.ReferralCode)
	if err != nil {
		return nil, fmt.Errorf("count referrals: %w", err)
	}

	return &ports.DashboardSummary{User: user, Referrals: referrals}, nil
}
