package handler

import (
	"time"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// --- Request types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Ref      string `json:"ref,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type completeTaskRequest struct {
	TaskID string `json:"task_id" validate:"required"`
}

type withdrawRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Method string `json:"method,omitempty"`
}

// --- Response types ---

// userResponse is the public projection of a user. The password hash never
// leaves the service; the session token travels separately.
type userResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	ReferralCode       string `json:"referral_code"`
	ReferredBy         string `json:"referred_by,omitempty"`
	ReferredByResolved bool   `json:"referred_by_resolved"`
	Balance            int64  `json:"balance"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		ReferralCode:       u.ReferralCode,
		ReferredBy:         u.ReferredBy,
		ReferredByResolved: u.ReferredByResolved,
		Balance:            u.Balance,
	}
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type taskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

type completeTaskResponse struct {
	OK      bool  `json:"ok"`
	Balance int64 `json:"balance"`
}

type dashboardStats struct {
	Referrals int64 `json:"referrals"`
}

type dashboardResponse struct {
	User           userResponse   `json:"user"`
	TasksCompleted []string       `json:"tasks_completed"`
	Stats          dashboardStats `json:"stats"`
}

type withdrawResponse struct {
	OK         bool               `json:"ok"`
	Withdrawal *domain.Withdrawal `json:"withdrawal"`
}

type ledgerEntryResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Amount     int64     `json:"amount"`
	Reference  string    `json:"reference,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type ledgerResponse struct {
	Entries []ledgerEntryResponse `json:"entries"`
}

type adminOverviewResponse struct {
	Users       []userResponse       `json:"users"`
	Withdrawals []*domain.Withdrawal `json:"withdrawals"`
}
