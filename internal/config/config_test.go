package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_STR_SET", " hello ")
	t.Setenv("TEST_STR_EMPTY", "")

	require.Equal(t, "hello", getEnvOrDefault("TEST_STR_SET", "default"))
	require.Equal(t, "default", getEnvOrDefault("TEST_STR_EMPTY", "default"))
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected int
	}{
		{"parses integer", "42", 42},
		{"uses default for empty", "", 10},
		{"uses default for non-numeric", "abc", 10},
		{"uses default for non-positive", "-5", 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tc.envValue)
			require.Equal(t, tc.expected, getEnvAsIntOrDefault("TEST_INT", 10))
		})
	}
}

func TestGetEnvAsBoolOrDefault(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	require.False(t, getEnvAsBoolOrDefault("TEST_BOOL", true))

	t.Setenv("TEST_BOOL", "nope")
	require.True(t, getEnvAsBoolOrDefault("TEST_BOOL", true))

	t.Setenv("TEST_BOOL", "")
	require.True(t, getEnvAsBoolOrDefault("TEST_BOOL", true))
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"GEMINI_API_KEY", "GEMINI_MODEL", "PROMPT_MODE", "PARAM_PREFIX", "IMAGE_TOOL_ENABLED",
		"IMAGE_BASE_URL", "IMAGE_TIMEOUT_SECONDS", "PORT", "ALLOWED_ORIGIN", "MAX_BODY_BYTES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Empty(t, cfg.GeminiAPIKey)
	require.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	require.Equal(t, "conversation", cfg.PromptMode)
	require.True(t, cfg.ImageToolEnabled)
	require.Equal(t, "https://image.pollinations.ai", cfg.ImageBaseURL)
	require.Equal(t, 60*time.Second, cfg.ImageTimeout)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "*", cfg.AllowedOrigin)
	require.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", " secret ")
	t.Setenv("PROMPT_MODE", "flat")
	t.Setenv("PARAM_PREFIX", "/portfolio-chat")
	t.Setenv("IMAGE_TOOL_ENABLED", "0")
	t.Setenv("IMAGE_TIMEOUT_SECONDS", "5")

	cfg := Load()
	require.Equal(t, "secret", cfg.GeminiAPIKey)
	require.Equal(t, "flat", cfg.PromptMode)
	require.Equal(t, "/portfolio-chat", cfg.ParamPrefix)
	require.False(t, cfg.ImageToolEnabled)
	require.Equal(t, 5*time.Second, cfg.ImageTimeout)
}
