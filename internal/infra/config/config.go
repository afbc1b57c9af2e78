package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderModeMemory = "memory"
	ProviderModeHTTP   = "http"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env             string
	HTTPAddr        string
	ProviderMode    string
	ProviderURL     string
	ProviderTimeout time.Duration
	FixturesPath    string
	WindowMaxDays   int
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:          getEnv("APP_ENV", "dev"),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		ProviderMode: strings.ToLower(getEnv("PROVIDER_MODE", ProviderModeMemory)),
		ProviderURL:  getEnv("PROVIDER_URL", ""),
		FixturesPath: getEnv("PROPERTY_FIXTURES", ""),
	}

	timeout, err := parseDurationEnv("PROVIDER_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ProviderTimeout = timeout

	windowMaxDays, err := parseIntEnv("WINDOW_MAX_DAYS", 90)
	if err != nil {
		return Config{}, err
	}
	if windowMaxDays < 1 {
		return Config{}, fmt.Errorf("WINDOW_MAX_DAYS must be at least 1, got %d", windowMaxDays)
	}
	cfg.WindowMaxDays = windowMaxDays

	switch cfg.ProviderMode {
	case ProviderModeMemory:
	case ProviderModeHTTP:
		if cfg.ProviderURL == "" {
			return Config{}, fmt.Errorf("PROVIDER_URL is required when PROVIDER_MODE=http")
		}
	default:
		return Config{}, fmt.Errorf("invalid PROVIDER_MODE: %q", cfg.ProviderMode)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return v, nil
}
