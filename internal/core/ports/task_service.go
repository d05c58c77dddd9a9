package ports

import (
	"context"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

type TaskService interface {
	List(ctx context.Context) ([]domain.Task, error)

	// Complete credits the task reward exactly once per user and returns the
	// new balance. Repeating a completed task is an explicit error, never a
	// silent success.
	Complete(ctx context.Context, userID, taskID string) (int64, error)
}
