package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/aibekov/task-tracker/internal/email"
	"github.com/aibekov/task-tracker/internal/metrics"
	"github.com/aibekov/task-tracker/internal/realtime"
	"github.com/aibekov/task-tracker/internal/repository"
)

// EventPublisher is the live fan-out side of dispatch. Implemented by
// *realtime.Hub.
type EventPublisher interface {
	Publish(userID string, ev realtime.Event) int
}

type NotificationUsecase struct {
	repo      repository.NotificationRepository
	publisher EventPublisher
	mail      email.Sender
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewNotificationUsecase(
	repo repository.NotificationRepository,
	publisher EventPublisher,
	mail email.Sender,
	retention time.Duration,
	logger *slog.Logger,
) *NotificationUsecase {
	return &NotificationUsecase{
		repo:      repo,
		publisher: publisher,
		mail:      mail,
		retention: retention,
		logger:    logger.With("component", "notification_dispatcher"),
		now:       time.Now,
	}
}

// Broadcast payload for the task.created event.
type taskPayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type userPayload struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type TaskCreatedBroadcast struct {
	Task      taskPayload `json:"task"`
	User      userPayload `json:"user"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
}

// TaskCreated persists the notification first (the stored row is the
// durable fallback for offline clients) and only then publishes to the
// owner's private channel and sends the
// best-effort email. Publish and email failures never propagate; a
// persistence failure does, so the caller can log it (the task itself
// is already committed and stays committed).
func (u *NotificationUsecase) TaskCreated(ctx context.Context, task *domain.Task, owner *domain.User) error {
	message := fmt.Sprintf("Une nouvelle tâche \"%s\" a été créée avec succès !", task.Title)

	_, err := u.repo.Create(ctx, &domain.Notification{
		UserID: owner.ID,
		Type:   domain.NotificationTypeTaskCreated,
		Data: domain.NotificationData{
			TaskID:          task.ID,
			TaskTitle:       task.Title,
			TaskDescription: task.Description,
			TaskStatus:      string(task.Status),
			Message:         message,
		},
	})
	if err != nil {
		metrics.DispatchFailuresTotal.WithLabelValues("persist").Inc()
		return fmt.Errorf("persist notification: %w", err)
	}
	metrics.NotificationsCreatedTotal.Inc()

	u.publisher.Publish(owner.ID, realtime.Event{
		Name: realtime.TaskCreatedEvent,
		Data: TaskCreatedBroadcast{
			Task: taskPayload{
				ID:          task.ID,
				Title:       task.Title,
				Description: task.Description,
				Status:      string(task.Status),
				CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
			},
			User: userPayload{
				ID:       owner.ID,
				FullName: owner.FullName,
				Email:    owner.Email,
			},
			Message:   message,
			Timestamp: u.now().UTC().Format(time.RFC3339),
		},
	})

	if err := u.mail.Send(ctx, owner.Email, "Nouvelle tâche créée", taskCreatedMailBody(task, owner)); err != nil {
		metrics.DispatchFailuresTotal.WithLabelValues("email").Inc()
		u.logger.ErrorContext(ctx, "task created email failed",
			"user_id", owner.ID, "task_id", task.ID, "error", err)
	}

	return nil
}

func taskCreatedMailBody(task *domain.Task, owner *domain.User) string {
	description := ""
	if task.Description != nil {
		description = *task.Description
	}
	return fmt.Sprintf(
		`<p>Bonjour %s !</p>
<p>Une nouvelle tâche a été créée avec succès.</p>
<p>Titre: %s</p>
<p>Description: %s</p>
<p>Statut: %s</p>
<p>Merci d'utiliser notre application !</p>`,
		owner.FullName, task.Title, description, task.Status,
	)
}

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type NotificationPage struct {
	Notifications []*domain.Notification
	CurrentPage   int
	LastPage      int
	PerPage       int
	Total         int
}

// List returns one page, newest first.
func (u *NotificationUsecase) List(ctx context.Context, userID string, page, perPage int) (*NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	notifications, total, err := u.repo.ListByUser(ctx, repository.ListNotificationsInput{
		UserID: userID,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	return &NotificationPage{
		Notifications: notifications,
		CurrentPage:   page,
		LastPage:      lastPage,
		PerPage:       perPage,
		Total:         total,
	}, nil
}

// MarkRead is idempotent: re-marking a read notification succeeds and
// leaves the original read time untouched.
func (u *NotificationUsecase) MarkRead(ctx context.Context, id, userID string) error {
	return u.repo.MarkRead(ctx, id, userID, u.now())
}

// MarkAllRead stamps every notification that is unread at the moment
// the UPDATE runs. A notification created concurrently may or may not
// be included; that race is accepted and callers reconcile via
// UnreadCount.
func (u *NotificationUsecase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return u.repo.MarkAllRead(ctx, userID, u.now())
}

func (u *NotificationUsecase) UnreadCount(ctx context.Context, userID string) (int, error) {
	return u.repo.CountUnread(ctx, userID)
}

func (u *NotificationUsecase) Delete(ctx context.Context, id, userID string) error {
	return u.repo.Delete(ctx, id, userID)
}

// PruneRead removes read notifications older than the retention window.
// Wired to the nightly cron in cmd/server.
func (u *NotificationUsecase) PruneRead(ctx context.Context) (int, error) {
	cutoff := u.now().Add(-u.retention)
	pruned, err := u.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune read notifications: %w", err)
	}
	if pruned > 0 {
		metrics.NotificationsPrunedTotal.Add(float64(pruned))
		u.logger.Info("pruned read notifications", "count", pruned, "cutoff", cutoff)
	}
	return pruned, nil
}
