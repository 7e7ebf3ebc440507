package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Completion provider
	GeminiAPIKey string
	GeminiModel  string
	PromptMode   string

	// Parameter store; empty disables SSM lookups.
	ParamPrefix string

	// Image tool
	ImageToolEnabled bool
	ImageBaseURL     string
	ImageTimeout     time.Duration

	// Standalone server
	Port          string
	AllowedOrigin string
	MaxBodyBytes  int64
}

// Load reads the environment, first merging a .env file when one exists.
// Variables already set in the environment take precedence.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "err", err)
	}

	return &Config{
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:      getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		PromptMode:       getEnvOrDefault("PROMPT_MODE", "conversation"),
		ParamPrefix:      strings.TrimSpace(os.Getenv("PARAM_PREFIX")),
		ImageToolEnabled: getEnvAsBoolOrDefault("IMAGE_TOOL_ENABLED", true),
		ImageBaseURL:     getEnvOrDefault("IMAGE_BASE_URL", "https://image.pollinations.ai"),
		ImageTimeout:     time.Duration(getEnvAsIntOrDefault("IMAGE_TIMEOUT_SECONDS", 60)) * time.Second,
		Port:             getEnvOrDefault("PORT", "3000"),
		AllowedOrigin:    getEnvOrDefault("ALLOWED_ORIGIN", "*"),
		MaxBodyBytes:     int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", 10<<20)),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return defaultVal
	}
	return b
}
