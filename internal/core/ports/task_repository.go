package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// TaskRepository reads the reward catalog. The catalog is provisioned out of
// band; Seed only populates an empty store at startup.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Seed(ctx context.Context, tasks []domain.Task) error
}
