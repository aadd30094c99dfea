package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr   string
	BackendURL   string
	RedisAddr    string
	KafkaBrokers []string
	SessionTTL   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}

	cfg := &Config{
		ListenAddr:   os.Getenv("LISTEN_ADDR"),
		BackendURL:   os.Getenv("API_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: []string{os.Getenv("KAFKA_BROKER")},
		SessionTTL:   24 * time.Hour,
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:3021"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if len(cfg.KafkaBrokers) == 1 && cfg.KafkaBrokers[0] == "" {
		// Auditing is optional; no broker means events are discarded.
		cfg.KafkaBrokers = nil
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			cfg.SessionTTL = parsed
		} else {
			slog.Warn("invalid SESSION_TTL, keeping default", "value", ttl, "error", err)
		}
	}

	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"backend_url", cfg.BackendURL,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers)
	return cfg
}
