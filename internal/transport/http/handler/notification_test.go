package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/aibekov/task-tracker/internal/transport/http/handler"
	"github.com/aibekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

type fakeNotifications struct {
	list        func(ctx context.Context, userID string, page, perPage int) (*usecase.NotificationPage, error)
	markRead    func(ctx context.Context, id, userID string) error
	markAllRead func(ctx context.Context, userID string) (int, error)
	unreadCount func(ctx context.Context, userID string) (int, error)
	delete      func(ctx context.Context, id, userID string) error
}

func (f *fakeNotifications) List(ctx context.Context, userID string, page, perPage int) (*usecase.NotificationPage, error) {
	return f.list(ctx, userID, page, perPage)
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id, userID string) error {
	return f.markRead(ctx, id, userID)
}

func (f *fakeNotifications) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return f.markAllRead(ctx, userID)
}

func (f *fakeNotifications) UnreadCount(ctx context.Context, userID string) (int, error) {
	return f.unreadCount(ctx, userID)
}

func (f *fakeNotifications) Delete(ctx context.Context, id, userID string) error {
	return f.delete(ctx, id, userID)
}

func notificationTestRouter(n *fakeNotifications) *gin.Engine {
	h := handler.NewNotificationHandler(n, slog.Default())
	r := gin.New()
	g := r.Group("/notifications", withUser(testUser))
	g.GET("", h.List)
	g.GET("/unread-count", h.UnreadCount)
	g.PATCH("/mark-all-read", h.MarkAllRead)
	g.PATCH("/:id/read", h.MarkRead)
	g.DELETE("/:id", h.Delete)
	return r
}

func TestListNotifications_PassesPagingParams(t *testing.T) {
	var gotPage, gotPerPage int
	n := &fakeNotifications{
		list: func(_ context.Context, userID string, page, perPage int) (*usecase.NotificationPage, error) {
			if userID != testUser.ID {
				t.Errorf("userID = %q", userID)
			}
			gotPage, gotPerPage = page, perPage
			return &usecase.NotificationPage{
				Notifications: []*domain.Notification{{
					ID:        "notif-1",
					UserID:    testUser.ID,
					Type:      domain.NotificationTypeTaskCreated,
					Data:      domain.NotificationData{TaskID: "task-1", TaskTitle: "write report"},
					CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
				}},
				CurrentPage: page,
				LastPage:    4,
				PerPage:     perPage,
				Total:       20,
			}, nil
		},
	}
	r := notificationTestRouter(n)

	w := performJSON(t, r, http.MethodGet, "/notifications?page=2&per_page=5", "")
	wantStatus(t, w, http.StatusOK)

	if gotPage != 2 || gotPerPage != 5 {
		t.Errorf("page/per_page = %d/%d, want 2/5", gotPage, gotPerPage)
	}

	env := decodeEnvelope(t, w)
	pagination, _ := env.Data["pagination"].(map[string]any)
	if pagination["current_page"] != float64(2) || pagination["last_page"] != float64(4) ||
		pagination["per_page"] != float64(5) || pagination["total"] != float64(20) {
		t.Errorf("pagination = %v", pagination)
	}
	items, _ := env.Data["notifications"].([]any)
	if len(items) != 1 {
		t.Fatalf("notifications = %v", env.Data["notifications"])
	}
	first, _ := items[0].(map[string]any)
	if first["read_at"] != nil {
		t.Errorf("read_at = %v, want null for unread", first["read_at"])
	}
}

func TestListNotifications_GarbageParamsFallBackToDefaults(t *testing.T) {
	var gotPage, gotPerPage int
	n := &fakeNotifications{
		list: func(_ context.Context, _ string, page, perPage int) (*usecase.NotificationPage, error) {
			gotPage, gotPerPage = page, perPage
			return &usecase.NotificationPage{CurrentPage: 1, LastPage: 1, PerPage: 10}, nil
		},
	}
	r := notificationTestRouter(n)

	w := performJSON(t, r, http.MethodGet, "/notifications?page=abc&per_page=xyz", "")
	wantStatus(t, w, http.StatusOK)

	// strconv yields 0; the usecase clamps those to its defaults.
	if gotPage != 0 || gotPerPage != 0 {
		t.Errorf("page/per_page = %d/%d, want 0/0 passed through", gotPage, gotPerPage)
	}
}

func TestUnreadCount(t *testing.T) {
	n := &fakeNotifications{
		unreadCount: func(_ context.Context, _ string) (int, error) { return 7, nil },
	}
	r := notificationTestRouter(n)

	w := performJSON(t, r, http.MethodGet, "/notifications/unread-count", "")
	wantStatus(t, w, http.StatusOK)

	env := decodeEnvelope(t, w)
	if env.Data["unread_count"] != float64(7) {
		t.Errorf("unread_count = %v", env.Data["unread_count"])
	}
}

func TestMarkRead_Success(t *testing.T) {
	var gotID string
	n := &fakeNotifications{
		markRead: func(_ context.Context, id, userID string) error {
			gotID = id
			if userID != testUser.ID {
				t.Errorf("userID = %q", userID)
			}
			return nil
		},
	}
	r := notificationTestRouter(n)

	w := performJSON(t, r, http.MethodPatch, "/notifications/notif-1/read", "")
	wantStatus(t, w, http.StatusOK)

	if gotID != "notif-1" {
		t.Errorf("id = %q", gotID)
	}
	env := decodeEnvelope(t, w)
	if env.Message != "Notification marquée comme lue" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestMarkRead_NotFound(t *testing.T) {
	n := &fakeNotifications{
		markRead: func(_ context.Context, _, _ string) error {
			return domain.ErrNotificationNotFound
		},
	}
	r := notificationTestRouter(n)

	w := performJSON(t, r, http.MethodPatch, "/notifications/other-notif/read", "")
	wantStatus(t, w, http.StatusNotFound)

	env := decodeEnvelope(t, w)
	if env.Success || env.Message != "Notification not found" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestMarkAllRead(t *testing.T) {
	called := false
	n := &fakeNotifications{
		markAllRead: func(_ context.Context, userID string) (int, error) {
			called = true
			if userID != testUser.ID {
				t.Errorf("userID = %q", userID)
			}
			return 3, nil
		},
	}
	r := notificationTestRouter(n)

	w := performJSON(t, r, http.MethodPatch, "/notifications/mark-all-read", "")
	wantStatus(t, w, http.StatusOK)

	if !called {
		t.Fatal("usecase not called")
	}
	env := decodeEnvelope(t, w)
	if env.Message != "Toutes les notifications ont été marquées comme lues" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestDeleteNotification_Success(t *testing.T) {
	n := &fakeNotifications{
		delete: func(_ context.Context, id, _ string) error {
			if id != "notif-1" {
				t.Errorf("id = %q", id)
			}
			return nil
		},
	}
	r := notificationTestRouter(n)

	w := performJSON(t, r, http.MethodDelete, "/notifications/notif-1", "")
	wantStatus(t, w, http.StatusOK)

	env := decodeEnvelope(t, w)
	if env.Message != "Notification supprimée" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestDeleteNotification_NotFound(t *testing.T) {
	n := &fakeNotifications{
		delete: func(_ context.Context, _, _ string) error {
			return domain.ErrNotificationNotFound
		},
	}
	r := notificationTestRouter(n)

	w := performJSON(t, r, http.MethodDelete, "/notifications/other-notif", "")
	wantStatus(t, w, http.StatusNotFound)
}
