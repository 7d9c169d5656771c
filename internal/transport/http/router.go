package httptransport

import (
	"log/slog"

	"github.com/aibekov/task-tracker/internal/repository"
	"github.com/aibekov/task-tracker/internal/token"
	"github.com/aibekov/task-tracker/internal/transport/http/handler"
	"github.com/aibekov/task-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	notificationHandler *handler.NotificationHandler,
	broadcastHandler *handler.BroadcastHandler,
	userRepo repository.UserRepository,
	issuer *token.Issuer,
	authLimiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(issuer)
	currentUser := middleware.CurrentUser(userRepo, logger)

	auth := r.Group("/auth")
	auth.POST("/register", authLimiter.Middleware(), authHandler.Register)
	auth.POST("/login", authLimiter.Middleware(), authHandler.Login)
	auth.GET("/me", authMW, currentUser, authHandler.Me)

	tasks := r.Group("/tasks", authMW, currentUser)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	notifications := r.Group("/notifications", authMW, currentUser)
	notifications.GET("", notificationHandler.List)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PATCH("/:id/read", notificationHandler.MarkRead)
	notifications.PATCH("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	broadcasting := r.Group("/broadcasting", authMW, currentUser)
	broadcasting.POST("/auth", broadcastHandler.Auth)
	broadcasting.GET("/events", broadcastHandler.Events)

	return r
}
