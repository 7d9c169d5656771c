package domain

import (
	"errors"
	"time"
)

// ErrTaskNotFound covers both a missing row and a row owned by another
// user. Repositories scope every query by owner, so callers cannot tell
// the two apart.
var ErrTaskNotFound = errors.New("task not found")

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
