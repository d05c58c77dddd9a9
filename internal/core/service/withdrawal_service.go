package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/wahho/rewards-platform/internal/api/metrics"
	"github.com/wahho/rewards-platform/internal/core/domain"
	"github.com/wahho/rewards-platform/internal/core/ports"
)

// WithdrawalService validates and records balance-debiting withdrawal
// requests.
type WithdrawalService struct {
	users       ports.UserRepository
	withdrawals ports.WithdrawalRepository
	ledger      ports.LedgerRecorder
	log         zerolog.Logger
}

func NewWithdrawalService(users ports.UserRepository, withdrawals ports.WithdrawalRepository, ledger ports.LedgerRecorder, log zerolog.Logger) *WithdrawalService {
	return &WithdrawalService{users: users, withdrawals: withdrawals, ledger: ledger, log: log}
}

// Request debits the balance with a funds-guarded atomic update, then appends
// the withdrawal record. If the append fails the debit is compensated with a
// refund so the balance invariant holds.
func (s *WithdrawalService) Request(ctx context.Context, userID string, amount int64, method string) (*domain.Withdrawal, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if method == "" {
		method = domain.DefaultWithdrawalMethod
	}

	user, err := s.users.DebitBalance(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	w := &domain.Withdrawal{
		ID:          ulid.Make().String(),
		UserID:      userID,
		Amount:      amount,
		Method:      method,
		Status:      domain.WithdrawalPending,
		RequestedAt: time.Now().UTC(),
	}

	if err := s.withdrawals.Create(ctx, w); err != nil {
		if _, refundErr := s.users.CreditBalance(ctx, userID, amount); refundErr != nil {
			s.log.Error().Err(refundErr).
				Str("user_id", userID).
				Int64("amount", amount).
				Msg("failed to refund debit after withdrawal insert failure")
		}
		return nil, fmt.Errorf("record withdrawal: %w", err)
	}

	metrics.WithdrawalsRequestedTotal.WithLabelValues(method).Inc()
	s.ledger.Record(domain.LedgerEntry{
		UserID:     userID,
		Type:       domain.EntryWithdrawalDebit,
		Amount:     -amount,
		Reference:  w.ID,
		RecordedAt: time.Now().UTC(),
	})

	s.log.Info().
		Str("user_id", userID).
		Str("withdrawal_id", w.ID).
		Int64("amount", amount).
		Int64("balance", user.Balance).
		Str("method", method).
		Msg("withdrawal requested")

	return w, nil
}
