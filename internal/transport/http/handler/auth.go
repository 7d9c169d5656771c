package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/aibekov/task-tracker/internal/transport/http/middleware"
	"github.com/aibekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type AuthHandler struct {
	auth   authUsecaser
	logger *slog.Logger
}

func NewAuthHandler(auth authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	FullName    string  `json:"full_name"    binding:"required,max=255"`
	Email       string  `json:"email"        binding:"required,email,max=255"`
	Password    string  `json:"password"     binding:"required,min=8"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
	Address     *string `json:"address"      binding:"omitempty,max=500"`
	Image       *string `json:"image"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Image:       u.Image,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, signed, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Image:       req.Image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			respondError(c, http.StatusBadRequest, errEmailTaken)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	respondSuccess(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  newUserResponse(user),
		"token": signed,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, signed, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, errInvalidCredentials)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	respondSuccess(c, http.StatusOK, "Login successful", gin.H{
		"user":  newUserResponse(user),
		"token": signed,
	})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.UserFromContext(c)
	respondSuccess(c, http.StatusOK, "", gin.H{
		"user": newUserResponse(user),
	})
}
