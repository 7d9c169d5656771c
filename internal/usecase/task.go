package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/aibekov/task-tracker/internal/repository"
)

// TaskNotifier is the dispatch hook run after a task is created.
// Implemented by NotificationUsecase.
type TaskNotifier interface {
	TaskCreated(ctx context.Context, task *domain.Task, owner *domain.User) error
}

type TaskUsecase struct {
	repo     repository.TaskRepository
	notifier TaskNotifier
	logger   *slog.Logger
}

func NewTaskUsecase(repo repository.TaskRepository, notifier TaskNotifier, logger *slog.Logger) *TaskUsecase {
	return &TaskUsecase{
		repo:     repo,
		notifier: notifier,
		logger:   logger.With("component", "task_usecase"),
	}
}

func (u *TaskUsecase) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) Get(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus // empty = pending
}

// Create stores the task and then runs the notification dispatch
// synchronously. Dispatch failure is logged and swallowed: the task
// itself has committed and the create must still succeed.
func (u *TaskUsecase) Create(ctx context.Context, owner *domain.User, input CreateTaskInput) (*domain.Task, error) {
	if input.Status == "" {
		input.Status = domain.TaskPending
	}

	task := &domain.Task{
		UserID:      owner.ID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if err := u.notifier.TaskCreated(ctx, created, owner); err != nil {
		u.logger.ErrorContext(ctx, "task created dispatch failed",
			"task_id", created.ID, "user_id", owner.ID, "error", err)
	}

	return created, nil
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

func (u *TaskUsecase) Update(ctx context.Context, id, userID string, input UpdateTaskInput) (*domain.Task, error) {
	task, err := u.repo.Update(ctx, id, userID, repository.UpdateTaskFields{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete reports whether a task was removed. A foreign or unknown id
// yields false, not an error.
func (u *TaskUsecase) Delete(ctx context.Context, id, userID string) (bool, error) {
	return u.repo.Delete(ctx, id, userID)
}
