package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// MinSecretLen is the minimum length of the session signing key in bytes.
const MinSecretLen = 32

// Config holds runtime configuration sourced from env vars. It is loaded once
// at process start and handed to each component at construction; nothing
// mutates it afterwards.
type Config struct {
	Port        string
	DatabaseURL string

	SessionSecret           string
	SessionDuration         time.Duration
	SessionRefreshThreshold time.Duration
	MaxAbsoluteSession      time.Duration
	BcryptCost              int

	CORSOrigins []string
}

// Load reads configuration from the environment and performs minimal
// validation. A signing key shorter than MinSecretLen fails closed here,
// before any request is served.
func Load() (Config, error) {
	cfg := Config{
		Port:                    fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionSecret:           strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SessionDuration:         secondsEnv("SESSION_DURATION_SEC", 900),
		SessionRefreshThreshold: secondsEnv("SESSION_REFRESH_THRESHOLD_SEC", 120),
		MaxAbsoluteSession:      secondsEnv("MAX_ABSOLUTE_SESSION_SEC", 2_592_000),
		BcryptCost:              intEnv("BCRYPT_COST", 10),
		CORSOrigins:             parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if len(cfg.SessionSecret) < MinSecretLen {
		return Config{}, fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSecretLen)
	}
	if cfg.SessionRefreshThreshold >= cfg.SessionDuration {
		return Config{}, errors.New("SESSION_REFRESH_THRESHOLD_SEC must be below SESSION_DURATION_SEC")
	}
	if cfg.MaxAbsoluteSession < cfg.SessionDuration {
		return Config{}, errors.New("MAX_ABSOLUTE_SESSION_SEC must be at least SESSION_DURATION_SEC")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func intEnv(key string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil && v > 0 {
		return v
	}
	return def
}

func secondsEnv(key string, def int) time.Duration {
	return time.Duration(intEnv(key, def)) * time.Second
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
