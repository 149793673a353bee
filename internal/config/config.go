// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Exactly one of
	// DatabaseURL and DataDir must be set; it selects the persistence
	// backend.
	DatabaseURL string

	// DataDir is a directory for file-based persistence, the single-user
	// alternative to Postgres.
	DataDir string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// GeminiAPIKey enables the AI assist endpoints when set. Without it
	// the endpoints answer 503.
	GeminiAPIKey string

	// GeminiModel overrides the default Gemini model name.
	GeminiModel string

	// MaxBodyBytes caps incoming request bodies. Defaults to 10 MiB,
	// sized for receipt photo uploads.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 10 << 20

// Load reads configuration from the environment, first merging in a .env
// file when one exists in the working directory. Returns an error when the
// backend selection is missing or ambiguous.
func Load() (Config, error) {
	// Absent .env is the normal production case, not an error.
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DataDir:      os.Getenv("DATA_DIR"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		MaxBodyBytes: defaultMaxBodyBytes,
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxBodyBytes = n
	}

	switch {
	case cfg.DatabaseURL == "" && cfg.DataDir == "":
		return Config{}, fmt.Errorf("either DATABASE_URL or DATA_DIR must be set")
	case cfg.DatabaseURL != "" && cfg.DataDir != "":
		return Config{}, fmt.Errorf("DATABASE_URL and DATA_DIR are mutually exclusive")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
