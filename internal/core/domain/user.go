package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the account aggregate. Balance is tracked in whole currency units
// and is only ever mutated by referral bonuses, task rewards, and withdrawal
// debits; it must never go negative.
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               string    `json:"role"`
	ReferralCode       string    `json:"referral_code"`
	ReferredBy         string    `json:"referred_by,omitempty"`
	ReferredByResolved bool      `json:"referred_by_resolved"`
	Balance            int64     `json:"balance"`
	TasksCompleted     []string  `json:"tasks_completed"`
	CreatedAt          time.Time `json:"created_at"`
}

// HasCompleted reports whether the user already completed the given task.
func (u *User) HasCompleted(taskID string) bool {
	for _, id := range u.TasksCompleted {
		if id == taskID {
			return true
		}
	}
	return false
}
