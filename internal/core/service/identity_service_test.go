package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/wahho/rewards-platform/internal/core/domain"
	"github.com/wahho/rewards-platform/internal/core/ports"
)

func newIdentity(repo *stubUserRepo, ledger *stubLedger) *IdentityService {
	return NewIdentityService(repo, ledger, "secret", time.Hour, 10, zerolog.Nop())
}

func TestIdentityService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newIdentity(repo, &stubLedger{})

	res, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "Alice", Email: "a@x.com", Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}

	u := res.User
	if u.ID == "" || u.ReferralCode == "" {
		t.Fatalf("expected generated id and referral code, got %+v", u)
	}
	if u.Balance != 0 {
		t.Fatalf("expected zero starting balance, got %d", u.Balance)
	}
	if u.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", u.Role)
	}
	if u.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(u.TasksCompleted) != 0 {
		t.Fatalf("expected empty completion set, got %v", u.TasksCompleted)
	}
}

func TestIdentityService_Signup_MissingFields(t *testing.T) {
	svc := newIdentity(newStubUserRepo(), &stubLedger{})

	cases := []ports.SignupInput{
		{Email: "a@x.com", Password: "p"},
		{Name: "Alice", Password: "p"},
		{Name: "Alice", Email: "a@x.com"},
	}
	for _, in := range cases {
		if _, err := svc.Signup(context.Background(), in); err != domain.ErrMissingFields {
			t.Fatalf("input %+v: expected ErrMissingFields, got %v", in, err)
		}
	}
}

func TestIdentityService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newIdentity(repo, &stubLedger{})

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Name: "Alice", Email: "a@x.com", Password: "p"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), ports.SignupInput{Name: "Imposter", Email: "a@x.com", Password: "p2"}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("store changed after failed signup: %d users", len(repo.users))
	}
}

func TestIdentityService_Signup_IdentifiersPairwiseUnique(t *testing.T) {
	repo := newStubUserRepo()
	svc := newIdentity(repo, &stubLedger{})

	ids := map[string]bool{}
	codes := map[string]bool{}
	tokens := map[string]bool{}
	for i := 0; i < 20; i++ {
		res, err := svc.Signup(context.Background(), ports.SignupInput{
			Name: "u", Email: string(rune('a'+i)) + "@x.com", Password: "p",
		})
		if err != nil {
			t.Fatalf("signup %d failed: %v", i, err)
		}
		if ids[res.User.ID] || codes[res.User.ReferralCode] || tokens[res.Token] {
			t.Fatalf("duplicate identifier at signup %d", i)
		}
		ids[res.User.ID] = true
		codes[res.User.ReferralCode] = true
		tokens[res.Token] = true
	}
}

func TestIdentityService_Signup_ReferralBonus(t *testing.T) {
	repo := newStubUserRepo()
	ledger := &stubLedger{}
	svc := newIdentity(repo, ledger)

	alice, err := svc.Signup(context.Background(), ports.SignupInput{Name: "Alice", Email: "a@x.com", Password: "p"})
	if err != nil {
		t.Fatalf("alice signup failed: %v", err)
	}

	bob, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "Bob", Email: "b@x.com", Password: "p", ReferralCode: alice.User.ReferralCode,
	})
	if err != nil {
		t.Fatalf("bob signup failed: %v", err)
	}

	if bob.User.ReferredBy != alice.User.ReferralCode {
		t.Fatalf("referred_by not stored: %q", bob.User.ReferredBy)
	}
	if !bob.User.ReferredByResolved {
		t.Fatalf("expected referral to be marked resolved")
	}
	if bob.User.Balance != 0 {
		t.Fatalf("referred user must not be credited, got %d", bob.User.Balance)
	}

	got, _ := repo.FindByID(context.Background(), alice.User.ID)
	if got.Balance != 10 {
		t.Fatalf("expected referrer balance 10, got %d", got.Balance)
	}

	bonuses := ledger.byType(domain.EntryReferralBonus)
	if len(bonuses) != 1 || bonuses[0].UserID != alice.User.ID || bonuses[0].Amount != 10 {
		t.Fatalf("unexpected bonus ledger entries: %+v", bonuses)
	}
}

func TestIdentityService_Signup_UnresolvedReferralTolerated(t *testing.T) {
	repo := newStubUserRepo()
	ledger := &stubLedger{}
	svc := newIdentity(repo, ledger)

	res, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "Bob", Email: "b@x.com", Password: "p", ReferralCode: "NOSUCH1X",
	})
	if err != nil {
		t.Fatalf("signup with unknown ref must succeed, got %v", err)
	}
	if res.User.ReferredBy != "NOSUCH1X" {
		t.Fatalf("referred_by must be stored verbatim, got %q", res.User.ReferredBy)
	}
	if res.User.ReferredByResolved {
		t.Fatalf("unknown referral code must be marked unresolved")
	}
	if len(ledger.byType(domain.EntryReferralBonus)) != 0 {
		t.Fatalf("no bonus may be credited for an unresolved referral")
	}
}

func TestIdentityService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newIdentity(repo, &stubLedger{})

	created, err := svc.Signup(context.Background(), ports.SignupInput{Name: "Carol", Email: "c@x.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "c@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.ID != created.User.ID {
		t.Fatalf("login returned wrong user: %s", res.User.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != created.User.ID {
		t.Fatalf("expected sub %s, got %v", created.User.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("expected role %s, got %v", domain.RoleUser, claims["role"])
	}
}

func TestIdentityService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newIdentity(repo, &stubLedger{})

	_, _ = svc.Signup(context.Background(), ports.SignupInput{Name: "Dave", Email: "d@x.com", Password: "goodpass"})
	if _, err := svc.Login(context.Background(), "d@x.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIdentityService_Login_UserNotFound(t *testing.T) {
	svc := newIdentity(newStubUserRepo(), &stubLedger{})

	if _, err := svc.Login(context.Background(), "ghost@x.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestNewReferralCode_Format(t *testing.T) {
	code := newReferralCode()
	if len(code) != 8 {
		t.Fatalf("expected 8-character code, got %q", code)
	}
}
