package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret     string `env:"JWT_SECRET,required" validate:"required,min=32"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS"     envDefault:"24" validate:"min=1,max=720"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	NotificationRetentionDays int    `env:"NOTIFICATION_RETENTION_DAYS" envDefault:"30" validate:"min=1,max=365"`
	NotificationPruneCron     string `env:"NOTIFICATION_PRUNE_CRON"     envDefault:"0 3 * * *" validate:"required"`

	AuthRatePerMinute int `env:"AUTH_RATE_PER_MINUTE" envDefault:"10" validate:"min=1,max=1000"`
	AuthRateBurst     int `env:"AUTH_RATE_BURST"      envDefault:"10" validate:"min=1,max=1000"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
