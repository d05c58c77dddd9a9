package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// SignupInput carries the fields accepted at registration. ReferralCode is
// the code of the referring user, if any; it is stored verbatim even when it
// resolves to nobody.
type SignupInput struct {
	Name         string
	Email        string
	Password     string
	ReferralCode string
}

// AuthResult pairs a session token with the authenticated user.
type AuthResult struct {
	Token string
	User  *domain.User
}

type IdentityService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
