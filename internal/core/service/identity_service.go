package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/wahho/rewards-platform/internal/api/metrics"
	"github.com/wahho/rewards-platform/internal/core/domain"
	"github.com/wahho/rewards-platform/internal/core/ports"
)

// maxCodeAttempts bounds referral-code regeneration on collision.
const maxCodeAttempts = 5

// IdentityService implements signup and login with JWT session tokens.
type IdentityService struct {
	users         ports.UserRepository
	ledger        ports.LedgerRecorder
	jwtSecret     string
	tokenTTL      time.Duration
	referralBonus int64
	log           zerolog.Logger
}

func NewIdentityService(users ports.UserRepository, ledger ports.LedgerRecorder, jwtSecret string, tokenTTL time.Duration, referralBonus int64, log zerolog.Logger) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &IdentityService{
		users:         users,
		ledger:        ledger,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		referralBonus: referralBonus,
		log:           log,
	}
}

// Signup registers a new account. A supplied referral code is stored verbatim;
// when it resolves to an existing user that referrer is credited the fixed
// bonus exactly once, at signup time. An unresolved code is not an error.
func (s *IdentityService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Resolve the referrer before creating the account so the resolution
	// state is recorded on the new user.
	var referrer *domain.User
	if in.ReferralCode != "" {
		referrer, err = s.users.FindByReferralCode(ctx, in.ReferralCode)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("resolve referral code: %w", err)
		}
	}

	code, err := s.newUniqueReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:                 uuid.NewString(),
		Name:               in.Name,
		Email:              in.Email,
		PasswordHash:       string(hash),
		Role:               domain.RoleUser,
		ReferralCode:       code,
		ReferredBy:         in.ReferralCode,
		ReferredByResolved: referrer != nil,
		Balance:            0,
		TasksCompleted:     []string{},
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if referrer != nil {
		if _, err := s.users.CreditBalance(ctx, referrer.ID, s.referralBonus); err != nil {
			// The account exists either way; losing the bonus is logged, not fatal.
			s.log.Error().Err(err).
				Str("referrer_id", referrer.ID).
				Str("user_id", user.ID).
				Msg("failed to credit referral bonus")
		} else {
			metrics.ReferralBonusesTotal.Inc()
			s.ledger.Record(domain.LedgerEntry{
				UserID:     referrer.ID,
				Type:       domain.EntryReferralBonus,
				Amount:     s.referralBonus,
				Reference:  user.ID,
				RecordedAt: time.Now().UTC(),
			})
		}
	}

	metrics.SignupsTotal.WithLabelValues(strconv.FormatBool(referrer != nil)).Inc()
	s.log.Info().Str("user_id", user.ID).Bool("referred", referrer != nil).Msg("user signed up")

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Login authenticates by email and password and issues a fresh session token.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *IdentityService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newUniqueReferralCode generates a referral code and regenerates on the
// (unlikely) collision with an existing user.
func (s *IdentityService) newUniqueReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := newReferralCode()
		_, err := s.users.FindByReferralCode(ctx, code)
		if errors.Is(err, domain.ErrUserNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("check referral code: %w", err)
		}
	}
	return "", fmt.Errorf("referral code space exhausted after %d attempts", maxCodeAttempts)
}

// newReferralCode returns an 8-character upper-case base32 code.
func newReferralCode() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		return fmt.Sprintf("%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b)
}
