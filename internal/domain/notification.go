package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

const NotificationTypeTaskCreated = "task_created"

// NotificationData is the stored payload, serialized to JSONB. Shape
// mirrors what the realtime event carries so clients can reconcile
// offline reads with live deliveries.
type NotificationData struct {
	TaskID          string  `json:"task_id"`
	TaskTitle       string  `json:"task_title"`
	TaskDescription *string `json:"task_description"`
	TaskStatus      string  `json:"task_status"`
	Message         string  `json:"message"`
}

type Notification struct {
	ID        string
	UserID    string
	Type      string
	Data      NotificationData
	ReadAt    *time.Time // nil = unread
	CreatedAt time.Time
}

func (n *Notification) Unread() bool {
	return n.ReadAt == nil
}
