package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port              string
	LogLevel          slog.Level
	ExportScale       int
	ExportConcurrency int
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// Not fatal: variables may be set directly
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	scale, err := getEnvInt("EXPORT_SCALE", 2)
	if err != nil {
		return nil, err
	}

	concurrency, err := getEnvInt("EXPORT_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:              getEnv("PORT", "7521"),
		LogLevel:          level,
		ExportScale:       scale,
		ExportConcurrency: concurrency,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.ExportScale < 1 || c.ExportScale > 4 {
		return errors.New("EXPORT_SCALE must be between 1 and 4")
	}
	if c.ExportConcurrency < 1 || c.ExportConcurrency > 64 {
		return errors.New("EXPORT_CONCURRENCY must be between 1 and 64")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return n, nil
}
