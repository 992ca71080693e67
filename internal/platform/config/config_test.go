package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_BASE_URL", "https://trainer.example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://trainer.example.com", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 20, cfg.DueCardLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_MissingBaseURLFails(t *testing.T) {
	t.Setenv("API_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")
}

func TestLoad_InvalidBaseURLFails(t *testing.T) {
	t.Setenv("API_BASE_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL", "10m")
	t.Setenv("DUE_CARD_LIMIT", "50")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 50, cfg.DueCardLimit)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
}

func TestLoad_RejectsOutOfRangeLimit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DUE_CARD_LIMIT", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUE_CARD_LIMIT")
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TTL")
}
