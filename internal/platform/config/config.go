package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	APIBaseURL   string        `env:"API_BASE_URL"`
	APIAuthToken string        `env:"API_AUTH_TOKEN"`
	RedisURL     string        `env:"REDIS_URL"`
	SessionTTL   time.Duration `env:"SESSION_TTL" default:"30m"`
	DueCardLimit int           `env:"DUE_CARD_LIMIT" default:"20"`
	LogLevel     string        `env:"LOG_LEVEL" default:"info"`
	LogFormat    string        `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.APIBaseURL); err != nil {
		return fmt.Errorf("API_BASE_URL must be a valid URL: %w", err)
	}

	// REDIS_URL is optional: without it the envelope store runs in memory.

	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", cfg.SessionTTL)
	}
	if cfg.DueCardLimit < 1 || cfg.DueCardLimit > 100 {
		return fmt.Errorf("DUE_CARD_LIMIT must be between 1 and 100, got %d", cfg.DueCardLimit)
	}

	return nil
}
