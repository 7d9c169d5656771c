package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token is expired")
	ErrTokenMalformed     = errors.New("token is malformed")
)

type User struct {
	ID          string
	FullName    string
	Email       string
	PhoneNumber *string
	Address     *string
	Image       *string

	// PasswordHash never leaves the domain/repository layers; response
	// structs in the transport layer carry no credential fields.
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}
