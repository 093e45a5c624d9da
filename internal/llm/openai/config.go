package openai

import (
	"log/slog"
	"net/http"
	"time"
)

// Config for the OpenAI-compatible client.
type Config struct {
	APIKey      string
	BaseURL     string        // e.g. https://api.openai.com/v1; "/chat/completions" is appended
	Model       string        // e.g. "gpt-4o-mini"
	Temperature float32       // 0..2
	Timeout     time.Duration // deadline for a single completion call
	JSONMode    bool          // send response_format=json_object; not every compatible server accepts it
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg: cfg,
		// Deadline comes from the per-call context so a client disconnect also cancels.
		httpClient: &http.Client{},
		log:        logger,
	}
}
