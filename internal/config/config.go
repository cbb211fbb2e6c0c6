// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the insight service.
type Config struct {
	Port                 string
	DatabaseURL          string
	RedisURL             string
	GeminiAPIKey         string
	GeminiModel          string        // e.g. "gemini-1.5-flash"
	RefreshIntervalHours int           // How often the refresh cron fires
	GenerationTimeout    time.Duration // Upper bound per completion call
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}

	interval := 24
	if s := os.Getenv("REFRESH_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("REFRESH_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	timeoutSecs := 30
	if s := os.Getenv("GENERATION_TIMEOUT_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("GENERATION_TIMEOUT_SECONDS must be a positive integer, got %q", s)
		}
		timeoutSecs = v
	}

	port := os.Getenv("INSIGHT_PORT")
	if port == "" {
		port = "8083"
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             redisURL,
		GeminiAPIKey:         apiKey,
		GeminiModel:          model,
		RefreshIntervalHours: interval,
		GenerationTimeout:    time.Duration(timeoutSecs) * time.Second,
	}, nil
}
