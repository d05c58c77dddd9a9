package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wahho/rewards-platform/internal/api/metrics"
	"github.com/wahho/rewards-platform/internal/core/domain"
	"github.com/wahho/rewards-platform/internal/core/ports"
)

// TaskService lists the reward catalog and applies completion rewards.
type TaskService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	ledger ports.LedgerRecorder
	log    zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, ledger ports.LedgerRecorder, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, ledger: ledger, log: log}
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx)
}

// Complete marks the task completed for the user and credits its reward in a
// single atomic repository operation. A second attempt for the same task
// fails with domain.ErrTaskAlreadyCompleted and leaves the balance unchanged.
func (s *TaskService) Complete(ctx context.Context, userID, taskID string) (int64, error) {
	if taskID == "" {
		return 0, domain.ErrMissingFields
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return 0, err
	}

	user, err := s.users.CompleteTask(ctx, userID, taskID, task.Reward)
	if err != nil {
		return 0, fmt.Errorf("complete task %s: %w", taskID, err)
	}

	metrics.TasksCompletedTotal.WithLabelValues(taskID).Inc()
	s.ledger.Record(domain.LedgerEntry{
		UserID:     userID,
		Type:       domain.EntryTaskReward,
		Amount:     task.Reward,
		Reference:  taskID,
		RecordedAt: time.Now().UTC(),
	})

	s.log.Info().
		Str("user_id", userID).
		Str("task_id", taskID).
		Int64("reward", task.Reward).
		Int64("balance", user.Balance).
		Msg("task completed")

	return user.Balance, nil
}
