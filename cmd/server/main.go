package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aibekov/task-tracker/config"
	"github.com/aibekov/task-tracker/internal/email"
	"github.com/aibekov/task-tracker/internal/health"
	"github.com/aibekov/task-tracker/internal/infrastructure/postgres"
	ctxlog "github.com/aibekov/task-tracker/internal/log"
	"github.com/aibekov/task-tracker/internal/metrics"
	"github.com/aibekov/task-tracker/internal/password"
	"github.com/aibekov/task-tracker/internal/realtime"
	"github.com/aibekov/task-tracker/internal/token"
	httptransport "github.com/aibekov/task-tracker/internal/transport/http"
	"github.com/aibekov/task-tracker/internal/transport/http/handler"
	"github.com/aibekov/task-tracker/internal/transport/http/middleware"
	"github.com/aibekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	metrics.Register()

	issuer := token.NewIssuer([]byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLHours)*time.Hour)
	hasher := password.NewBcryptHasher()
	hub := realtime.NewHub(logger)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, issuer)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	notificationUsecase := usecase.NewNotificationUsecase(
		notificationRepo, hub, sender,
		time.Duration(cfg.NotificationRetentionDays)*24*time.Hour,
		logger,
	)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase, logger)

	taskUsecase := usecase.NewTaskUsecase(taskRepo, notificationUsecase, logger)
	taskHandler := handler.NewTaskHandler(taskUsecase, logger)

	broadcastHandler := handler.NewBroadcastHandler(hub, logger)

	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)
	defer authLimiter.Stop()

	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(
			logger, authHandler, taskHandler, notificationHandler,
			broadcastHandler, userRepo, issuer, authLimiter,
		),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	pruner := cron.New()
	if _, err := pruner.AddFunc(cfg.NotificationPruneCron, func() {
		pruneCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := notificationUsecase.PruneRead(pruneCtx); err != nil {
			logger.Error("notification prune", "error", err)
		}
	}); err != nil {
		stop()
		log.Fatalf("prune cron: %v", err)
	}
	pruner.Start()

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	<-pruner.Stop().Done()
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
