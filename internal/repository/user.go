package repository

import (
	"context"

	"github.com/aibekov/task-tracker/internal/domain"
)

// Usecases depend on interfaces, not the pgx implementations, so the DB
// can be swapped and tests can inject fakes.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken when the
	// email is already registered (case-insensitive).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
