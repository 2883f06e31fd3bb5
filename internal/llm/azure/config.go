package azure

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the Azure OpenAI client.
type Config struct {
	Endpoint   string        // e.g. https://myresource.openai.azure.com
	APIKey     string        // if empty, falls back to env AZURE_OPENAI_API_KEY
	APIVersion string        // default 2024-06-01
	Deployment string        // chat deployment name
	Timeout    time.Duration // http client timeout
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("AZURE_OPENAI_API_KEY")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-06-01"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
