package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/aibekov/task-tracker/internal/transport/http/middleware"
	"github.com/aibekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

type notificationUsecaser interface {
	List(ctx context.Context, userID string, page, perPage int) (*usecase.NotificationPage, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id, userID string) error
}

type NotificationHandler struct {
	notifications notificationUsecaser
	logger        *slog.Logger
}

func NewNotificationHandler(notifications notificationUsecaser, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		logger:        logger.With("component", "notification_handler"),
	}
}

type notificationDataResponse struct {
	TaskID          string  `json:"task_id"`
	TaskTitle       string  `json:"task_title"`
	TaskDescription *string `json:"task_description"`
	TaskStatus      string  `json:"task_status"`
	Message         string  `json:"message"`
}

type notificationResponse struct {
	ID        string                   `json:"id"`
	Type      string                   `json:"type"`
	Data      notificationDataResponse `json:"data"`
	ReadAt    *time.Time               `json:"read_at"`
	CreatedAt time.Time                `json:"created_at"`
}

func newNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:   n.ID,
		Type: n.Type,
		Data: notificationDataResponse{
			TaskID:          n.Data.TaskID,
			TaskTitle:       n.Data.TaskTitle,
			TaskDescription: n.Data.TaskDescription,
			TaskStatus:      n.Data.TaskStatus,
			Message:         n.Data.Message,
		},
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// GET /notifications?page=N&per_page=M
func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.UserFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	result, err := h.notifications.List(c.Request.Context(), user.ID, page, perPage)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list notifications", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	items := make([]notificationResponse, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		items = append(items, newNotificationResponse(n))
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"notifications": items,
		"pagination": gin.H{
			"current_page": result.CurrentPage,
			"last_page":    result.LastPage,
			"per_page":     result.PerPage,
			"total":        result.Total,
		},
	})
}

// GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := middleware.UserFromContext(c)

	count, err := h.notifications.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "unread count", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"unread_count": count})
}

// PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user := middleware.UserFromContext(c)

	err := h.notifications.MarkRead(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			respondError(c, http.StatusNotFound, errNotificationNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "mark notification read",
			"notification_id", c.Param("id"), "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	respondSuccess(c, http.StatusOK, "Notification marquée comme lue", nil)
}

// PATCH /notifications/mark-all-read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user := middleware.UserFromContext(c)

	if _, err := h.notifications.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "mark all notifications read", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	respondSuccess(c, http.StatusOK, "Toutes les notifications ont été marquées comme lues", nil)
}

// DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	user := middleware.UserFromContext(c)

	err := h.notifications.Delete(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			respondError(c, http.StatusNotFound, errNotificationNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete notification",
			"notification_id", c.Param("id"), "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	respondSuccess(c, http.StatusOK, "Notification supprimée", nil)
}
