package handler

const (
	errInternalServer       = "Internal server error"
	errTaskNotFound         = "Task not found"
	errNotificationNotFound = "Notification not found"
	errEmailTaken           = "User with this email already exists"
	errInvalidCredentials   = "Invalid credentials"
	errForbiddenChannel     = "Forbidden"
)
