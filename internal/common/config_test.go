package common

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BASE_URL", "https://llm.example.com/v1/")
	t.Setenv("API_KEY", "sk-test")
	t.Setenv("MODEL_NAME", "gpt-4o-mini")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "https://llm.example.com/v1", cfg.LLM.BaseURL)
	require.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	require.Equal(t, float32(0), cfg.LLM.Temperature)
	require.Equal(t, ":8000", cfg.Server.HTTPAddr)
	require.Equal(t, int64(10*1024*1024), cfg.Server.MaxUploadBytes)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_ADDR", "9000")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MODEL_NAME=from-file\nLLM_TIMEOUT=90s\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("LLM_TIMEOUT") })

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	require.Equal(t, ":9000", cfg.Server.HTTPAddr)
}

func TestConfigValidate_MissingRequired(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{HTTPAddr: ":8000", MaxUploadBytes: 10 << 20},
		LLM:    LLMConfig{Timeout: 30 * time.Second},
		Log:    LogConfig{Format: "json"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidInput))
	require.Equal(t, CodeConfig, CodeOf(err))
	for _, key := range []string{"BASE_URL", "API_KEY", "MODEL_NAME"} {
		require.Contains(t, err.Error(), key)
	}
}

func TestConfigValidate_RejectsBadValues(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{HTTPAddr: ":8000", MaxUploadBytes: 10 << 20},
		LLM: LLMConfig{
			BaseURL: "not a url",
			APIKey:  "k",
			Model:   "m",
			Timeout: 20 * time.Minute,
		},
		Log: LogConfig{Format: "xml"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	require.Contains(t, msg, "BASE_URL")
	require.Contains(t, msg, "LLM_TIMEOUT")
	require.Contains(t, msg, "LOG_FORMAT")
}

func TestLLMConfigLogValue_HidesAPIKey(t *testing.T) {
	var sb strings.Builder
	logger := slog.New(slog.NewTextHandler(&sb, nil))
	logger.Info("config", "llm", LLMConfig{BaseURL: "https://x", APIKey: "sk-secret", Model: "m"})

	require.NotContains(t, sb.String(), "sk-secret")
	require.Contains(t, sb.String(), "api_key_set=true")
}

func TestLogConfigSlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, LogConfig{Level: "DEBUG"}.SlogLevel())
	require.Equal(t, slog.LevelWarn, LogConfig{Level: "warning"}.SlogLevel())
	require.Equal(t, slog.LevelInfo, LogConfig{Level: "nope"}.SlogLevel())
}
