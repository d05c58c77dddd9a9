package service

import (
	"context"
	"sort"
	"sync"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.TasksCompleted = append([]string(nil), u.TasksCompleted...)
	return &clone
}

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User // keyed by ID
	createErr error                   // if set, Create returns this error
	creditErr error                   // if set, CreditBalance returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByReferralCode(_ context.Context, code string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ReferralCode == code {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) CreditBalance(_ context.Context, userID string, amount int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.creditErr != nil {
		return nil, r.creditErr
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Balance += amount
	return cloneUser(u), nil
}

func (r *stubUserRepo) CompleteTask(_ context.Context, userID, taskID string, reward int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if u.HasCompleted(taskID) {
		return nil, domain.ErrTaskAlreadyCompleted
	}
	u.TasksCompleted = append(u.TasksCompleted, taskID)
	u.Balance += reward
	return cloneUser(u), nil
}

func (r *stubUserRepo) DebitBalance(_ context.Context, userID string, amount int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if u.Balance < amount {
		return nil, domain.ErrInsufficientFunds
	}
	u.Balance -= amount
	return cloneUser(u), nil
}

func (r *stubUserRepo) CountReferred(_ context.Context, referralCode string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.ReferredBy == referralCode {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type stubTaskRepo struct {
	tasks []domain.Task
}

func (r *stubTaskRepo) List(_ context.Context) ([]domain.Task, error) {
	return append([]domain.Task(nil), r.tasks...), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			clone := t
			return &clone, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) Seed(_ context.Context, tasks []domain.Task) error {
	if len(r.tasks) == 0 {
		r.tasks = append(r.tasks, tasks...)
	}
	return nil
}

type stubWithdrawalRepo struct {
	records   []*domain.Withdrawal
	createErr error // if set, Create returns this error
}

func (r *stubWithdrawalRepo) Create(_ context.Context, w *domain.Withdrawal) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *w
	r.records = append(r.records, &clone)
	return nil
}

func (r *stubWithdrawalRepo) List(_ context.Context) ([]*domain.Withdrawal, error) {
	return append([]*domain.Withdrawal(nil), r.records...), nil
}

// stubLedger collects entries synchronously in place of the async dispatcher.
type stubLedger struct {
	mu      sync.Mutex
	entries []domain.LedgerEntry
}

func (l *stubLedger) Record(entry domain.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *stubLedger) byType(t domain.LedgerEntryType) []domain.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range l.entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
