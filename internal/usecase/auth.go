package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/aibekov/task-tracker/internal/password"
	"github.com/aibekov/task-tracker/internal/repository"
	"github.com/aibekov/task-tracker/internal/token"
)

type AuthUsecase struct {
	users  repository.UserRepository
	hasher password.Hasher
	issuer *token.Issuer
}

func NewAuthUsecase(users repository.UserRepository, hasher password.Hasher, issuer *token.Issuer) *AuthUsecase {
	return &AuthUsecase{users: users, hasher: hasher, issuer: issuer}
}

type RegisterInput struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber *string
	Address     *string
	Image       *string
}

// Register creates the user and returns it with a fresh bearer token.
// Returns domain.ErrEmailTaken when the email is already registered.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	// Pre-check gives the domain error on the common path; the unique
	// index on lower(email) still catches the concurrent-register race.
	_, err := u.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, "", domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		Image:        input.Image,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	signed, err := u.issuer.Issue(created)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return created, signed, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password are both domain.ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, email, plainPassword string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}

	if err := u.hasher.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := u.issuer.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, signed, nil
}
