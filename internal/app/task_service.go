package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/task-planner/internal/app/validation"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Compile-time check that TaskService implements ports.TaskService.
var _ ports.TaskService = (*TaskService)(nil)

// TaskService implements ports.TaskService.
type TaskService struct {
	base
}

// NewTaskService creates a TaskService over the given store.
func NewTaskService(store ports.Store, logger *slog.Logger, opts ...Option) *TaskService {
	return &TaskService{base: newBase(store, logger, opts)}
}

// CreateTask validates and stores a new OPEN task on an OPEN board.
func (s *TaskService) CreateTask(ctx context.Context, k *task.Task) (*task.Task, error) {
	s.logger.InfoContext(ctx, "creating task",
		slog.String("board_id", k.BoardID),
		slog.String("user_id", k.UserID),
	)

	err := s.store.Update(ctx, func(tx ports.Tx) error {
		if err := validation.New(tx).NewTask(ctx, k); err != nil {
			return err
		}
		k.ID = s.newID()
		k.Status = task.StatusOpen
		k.CreatedAt = s.now()
		return tx.Tasks().Create(ctx, k)
	})
	if err != nil {
		return nil, s.fail(ctx, "create_task", err, slog.String("board_id", k.BoardID))
	}
	return k, nil
}

// UpdateTaskStatus moves a task to status while its board is OPEN.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id string, status task.Status) (*task.Task, error) {
	s.logger.InfoContext(ctx, "updating task status",
		slog.String("id", id),
		slog.String("status", status.String()),
	)

	var updated *task.Task
	err := s.store.Update(ctx, func(tx ports.Tx) error {
		k, err := validation.New(tx).TaskStatusChange(ctx, id, status)
		if err != nil {
			return err
		}
		if err := tx.Tasks().UpdateStatus(ctx, id, k.Status); err != nil {
			return err
		}
		updated = k
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "update_task_status", err, slog.String("id", id))
	}
	return updated, nil
}

// GetTask returns a single task.
func (s *TaskService) GetTask(ctx context.Context, id string) (*task.Task, error) {
	var k *task.Task
	err := s.store.View(ctx, func(tx ports.Tx) error {
		var err error
		k, err = tx.Tasks().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "describe_task", err, slog.String("id", id))
	}
	return k, nil
}
