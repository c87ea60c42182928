// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinSecretLength is the shortest JWT secret the server accepts.
const MinSecretLength = 32

type Config struct {
	Port              string
	DBPath            string
	AllowedOrigin     string
	JWTSecret         string
	TokenTTLHours     int
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	PreviewTTLSeconds int
	LogLevel          string
}

// Load reads the environment. A .env file in the working directory is
// loaded first if present; variables already set take precedence.
func Load() Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	tokenTTL, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 24
	}
	previewTTL, err := strconv.Atoi(getEnv("PREVIEW_TTL_SECONDS", "60"))
	if err != nil || previewTTL < 1 {
		previewTTL = 60
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "./data/tabsplit.db"),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "*"),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTLHours:     tokenTTL,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		PreviewTTLSeconds: previewTTL,
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinSecretLength)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c Config) PreviewTTL() time.Duration {
	return time.Duration(c.PreviewTTLSeconds) * time.Second
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
