package domain

import "time"

// LedgerEntryType classifies a balance mutation in the audit trail.
type LedgerEntryType string

const (
	EntryReferralBonus   LedgerEntryType = "referral_bonus"
	EntryTaskReward      LedgerEntryType = "task_reward"
	EntryWithdrawalDebit LedgerEntryType = "withdrawal_debit"
)

// LedgerEntry is one line of the append-only balance audit trail. Amount is
// signed: credits positive, debits negative. Reference points at the record
// that caused the mutation (task id, withdrawal id, or referred user id).
// Entries are written asynchronously; the user balance is the source of truth.
type LedgerEntry struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Type       LedgerEntryType `json:"type"`
	Amount     int64           `json:"amount"`
	Reference  string          `json:"reference,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}
