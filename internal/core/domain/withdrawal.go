package domain

import "time"

// WithdrawalStatus represents the lifecycle state of a withdrawal request.
// Only "pending" is produced here; later transitions are handled by an
// external back-office process.
type WithdrawalStatus string

const (
	WithdrawalPending WithdrawalStatus = "pending"
)

// DefaultWithdrawalMethod is applied when the caller omits a payout method.
const DefaultWithdrawalMethod = "UPI"

// Withdrawal records a balance-debiting payout request.
type Withdrawal struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Amount      int64            `json:"amount"`
	Method      string           `json:"method"`
	Status      WithdrawalStatus `json:"status"`
	RequestedAt time.Time        `json:"requested_at"`
}
