package repository

import (
	"context"
	"time"

	"github.com/aibekov/task-tracker/internal/domain"
)

type ListNotificationsInput struct {
	UserID string
	Limit  int
	Offset int
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	// ListByUser returns a page ordered newest-first plus the total row
	// count for the user.
	ListByUser(ctx context.Context, input ListNotificationsInput) ([]*domain.Notification, int, error)
	// MarkRead sets read_at if it is still null. Marking an already-read
	// notification is a no-op success; only a missing/foreign id is
	// domain.ErrNotificationNotFound.
	MarkRead(ctx context.Context, id, userID string, at time.Time) error
	// MarkAllRead stamps every currently-unread notification and returns
	// how many rows it touched.
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id, userID string) error
	// DeleteReadBefore removes read notifications created before cutoff,
	// across all users. Used by the retention pruner.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error)
}
