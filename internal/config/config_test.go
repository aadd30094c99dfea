package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("API_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:3021", cfg.BackendURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("API_URL", "http://backend:3021/api/v1")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	t.Setenv("SESSION_TTL", "1h")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "http://backend:3021/api/v1", cfg.BackendURL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestLoad_InvalidTTLKeepsDefault(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}
