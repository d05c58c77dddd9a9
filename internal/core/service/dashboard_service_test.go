package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

func TestDashboardService_Summary_NoReferrals(t *testing.T) {
	users := newStubUserRepo()
	seedUser(users, "u1", 0)
	svc := NewDashboardService(users)

	sum, err := svc.Summary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if sum.Referrals != 0 {
		t.Fatalf("expected 0 referrals, got %d", sum.Referrals)
	}
	if sum.User.ID != "u1" {
		t.Fatalf("unexpected user: %+v", sum.User)
	}
}

func TestDashboardService_Summary_CountsReferrals(t *testing.T) {
	users := newStubUserRepo()
	owner := seedUser(users, "u1", 0)

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("r%d", i)
		u := seedUser(users, id, 0)
		u.ReferredBy = owner.ReferralCode
		users.users[id] = u
	}
	// one user referred by somebody else
	other := seedUser(users, "x1", 0)
	other.ReferredBy = "OTHERCODE"
	users.users["x1"] = other

	sum, err := NewDashboardService(users).Summary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if sum.Referrals != 3 {
		t.Fatalf("expected 3 referrals, got %d", sum.Referrals)
	}
}

func TestDashboardService_Summary_UnknownUser(t *testing.T) {
	svc := NewDashboardService(newStubUserRepo())

	if _, err := svc.Summary(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
