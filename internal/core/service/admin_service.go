package service

import (
	"context"
	"fmt"

	"github.com/wahho/rewards-platform/internal/core/ports"
)

// AdminService builds the back-office overview of accounts and withdrawals.
type AdminService struct {
	users       ports.UserRepository
	withdrawals ports.WithdrawalRepository
}

func NewAdminService(users ports.UserRepository, withdrawals ports.WithdrawalRepository) *AdminService {
	return &AdminService{users: users, withdrawals: withdrawals}
}

func (s *AdminService) Overview(ctx context.Context) (*ports.AdminOverview, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	withdrawals, err := s.withdrawals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}

	return &ports.AdminOverview{Users: users, Withdrawals: withdrawals}, nil
}
