package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration for the app.
type Config struct {
	Port         string
	BackendURL   string
	DatabasePath string
	DatabaseURL  string // libSQL (Turso) URL; empty means local sqlite file
	AppEnv       string // "development" | "production"
	LogLevel     string

	CacheTTL      time.Duration
	CacheSweep    time.Duration
	FetchTimeout  time.Duration
	RateLimitPerM int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		BackendURL:    os.Getenv("BACKEND_URL"),
		DatabasePath:  getenv("DATABASE_PATH", "data/db.sqlite3"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AppEnv:        getenv("APP_ENV", "production"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		CacheTTL:      time.Duration(getenvInt("CACHE_TTL_SECONDS", 3600)) * time.Second,
		CacheSweep:    time.Duration(getenvInt("CACHE_SWEEP_SECONDS", 300)) * time.Second,
		FetchTimeout:  time.Duration(getenvInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		RateLimitPerM: getenvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	// Required validations
	if cfg.BackendURL == "" {
		return nil, errors.New("BACKEND_URL is required")
	}
	if cfg.CacheTTL <= 0 {
		return nil, errors.New("CACHE_TTL_SECONDS must be positive")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
