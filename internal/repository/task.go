package repository

import (
	"context"

	"github.com/aibekov/task-tracker/internal/domain"
)

// UpdateTaskFields carries a partial update; nil means "leave as is".
type UpdateTaskFields struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// Every method is scoped by userID. A task owned by someone else is
// indistinguishable from a missing one: domain.ErrTaskNotFound either way.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	// ListByUser returns the user's tasks in creation order.
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	Update(ctx context.Context, id, userID string, fields UpdateTaskFields) (*domain.Task, error)
	// Delete reports whether a row was removed; false is not an error.
	Delete(ctx context.Context, id, userID string) (bool, error)
}
