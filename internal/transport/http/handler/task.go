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

type taskUsecaser interface {
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	Get(ctx context.Context, id, userID string) (*domain.Task, error)
	Create(ctx context.Context, owner *domain.User, input usecase.CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, id, userID string, input usecase.UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type TaskHandler struct {
	tasks  taskUsecaser
	logger *slog.Logger
}

func NewTaskHandler(tasks taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string  `json:"title"       binding:"required,max=255"`
	Description *string `json:"description"`
	Status      string  `json:"status"      binding:"omitempty,oneof=pending in_progress done"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status"      binding:"omitempty,oneof=pending in_progress done"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	user := middleware.UserFromContext(c)

	tasks, err := h.tasks.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list tasks", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	items := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, newTaskResponse(t))
	}
	respondSuccess(c, http.StatusOK, "", gin.H{"tasks": items})
}

// GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	user := middleware.UserFromContext(c)

	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, errTaskNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get task", "task_id", c.Param("id"), "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"task": newTaskResponse(task)})
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user := middleware.UserFromContext(c)

	task, err := h.tasks.Create(c.Request.Context(), user, usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create task", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	respondSuccess(c, http.StatusCreated, "Task created successfully", gin.H{
		"task": newTaskResponse(task),
	})
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user := middleware.UserFromContext(c)

	var status *domain.TaskStatus
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		status = &s
	}

	task, err := h.tasks.Update(c.Request.Context(), c.Param("id"), user.ID, usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, errTaskNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "update task", "task_id", c.Param("id"), "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	respondSuccess(c, http.StatusOK, "Task updated successfully", gin.H{
		"task": newTaskResponse(task),
	})
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	user := middleware.UserFromContext(c)

	deleted, err := h.tasks.Delete(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "delete task", "task_id", c.Param("id"), "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, errTaskNotFound)
		return
	}

	respondSuccess(c, http.StatusOK, "Task deleted successfully", nil)
}
