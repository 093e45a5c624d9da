package common

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr       string
	GRPCAddr       string // empty disables the gRPC health listener
	MaxUploadBytes int64
	GinMode        string
}

// LLMConfig holds the remote model endpoint configuration.
type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
	JSONMode    bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" | "text"
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment take precedence over .env values.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, NewAppError(CodeConfig, "load .env", err)
	}
	return &Config{
		Server: ServerConfig{
			HTTPAddr:       normalizeAddr(getEnv("HTTP_ADDR", ":8000")),
			GRPCAddr:       normalizeAddr(os.Getenv("GRPC_ADDR")),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_MB", 10)) * 1024 * 1024,
			GinMode:        getEnv("GIN_MODE", "release"),
		},
		LLM: LLMConfig{
			BaseURL:     strings.TrimRight(getEnv("BASE_URL", ""), "/"),
			APIKey:      getEnv("API_KEY", ""),
			Model:       getEnv("MODEL_NAME", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
			JSONMode:    getEnvAsBool("LLM_JSON_MODE", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func normalizeAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr != "" && !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return addr
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	err := validation.Errors{
		"BASE_URL":        validation.Validate(c.LLM.BaseURL, validation.Required, is.URL),
		"API_KEY":         validation.Validate(c.LLM.APIKey, validation.Required),
		"MODEL_NAME":      validation.Validate(c.LLM.Model, validation.Required),
		"LLM_TEMPERATURE": validation.Validate(c.LLM.Temperature, validation.Min(float32(0)), validation.Max(float32(2))),
		"LLM_TIMEOUT":     validation.Validate(c.LLM.Timeout, validation.Min(time.Second), validation.Max(10*time.Minute)),
		"HTTP_ADDR":       validation.Validate(c.Server.HTTPAddr, validation.Required),
		"MAX_UPLOAD_MB":   validation.Validate(c.Server.MaxUploadBytes, validation.Min(int64(1024*1024))),
		"LOG_FORMAT":      validation.Validate(c.Log.Format, validation.In("json", "text")),
	}.Filter()
	if err != nil {
		return NewAppError(CodeConfig, "invalid configuration", errors.Join(ErrInvalidInput, err))
	}
	return nil
}

// LogValue keeps the credential out of structured logs.
func (c LLMConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", c.BaseURL),
		slog.String("model", c.Model),
		slog.Float64("temperature", float64(c.Temperature)),
		slog.Duration("timeout", c.Timeout),
		slog.Bool("json_mode", c.JSONMode),
		slog.Bool("api_key_set", c.APIKey != ""),
	)
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
